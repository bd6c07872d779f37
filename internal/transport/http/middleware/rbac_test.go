package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nomina/internal/domain/auth"
)

type stubPerms struct {
	allowed map[string]bool
}

func (s stubPerms) HasPermission(_ context.Context, _, permission string) (bool, error) {
	return s.allowed[permission], nil
}

func authedRequest(t *testing.T, secret string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{
		UserID: "u1", CompanyID: "c1", RoleID: "r1", RoleName: auth.RoleOperator,
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	handler := RequirePermission("employees.read", stubPerms{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequirePermissionDenied(t *testing.T) {
	const secret = "test-secret"
	handler := Auth(secret)(RequirePermission("payroll.authorize", stubPerms{allowed: map[string]bool{}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, secret))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermissionAllowed(t *testing.T) {
	const secret = "test-secret"
	ran := false
	handler := Auth(secret)(RequirePermission("employees.read", stubPerms{allowed: map[string]bool{"employees.read": true}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ran = true
			w.WriteHeader(http.StatusOK)
		})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, secret))
	if !ran || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run with 200, got %d", rec.Code)
	}
}

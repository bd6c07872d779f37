package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nomina/internal/domain/auth"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	const secret = "round-trip-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{
		UserID: "u1", CompanyID: "c1", RoleID: "r1", RoleName: auth.RoleClient,
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var user auth.UserContext
	var ok bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected user context")
	}
	if user.UserID != "u1" || user.CompanyID != "c1" || user.RoleName != auth.RoleClient {
		t.Fatalf("unexpected user context: %+v", user)
	}
}

func TestAuthInvalidTokenPassesAnonymously(t *testing.T) {
	var ok bool
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("invalid token must not yield a user context")
	}
}

func TestAuthWrongSecretRejected(t *testing.T) {
	token, err := auth.GenerateToken("secret-a", auth.Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var ok bool
	handler := Auth("secret-b")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("token signed with another secret must not authenticate")
	}
}

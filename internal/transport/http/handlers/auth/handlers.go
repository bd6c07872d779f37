package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/notifications"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Service   *auth.Service
	Perms     middleware.PermissionStore
	Mailer    notifications.Mailer
	JWTSecret string
	EmailFrom string
	AppURL    string
}

func NewHandler(service *auth.Service, perms middleware.PermissionStore, mailer notifications.Mailer, jwtSecret, emailFrom, appURL string) *Handler {
	return &Handler{Service: service, Perms: perms, Mailer: mailer, JWTSecret: jwtSecret, EmailFrom: emailFrom, AppURL: appURL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(10, time.Minute)).Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Post("/mfa/setup", h.handleMFASetup)
		r.Post("/mfa/verify", h.handleMFAVerify)
	})
	r.Route("/invitations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermInvitationsWrite, h.Perms)).Post("/", h.handleInvite)
		r.Post("/accept", h.handleAccept)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		MFACode  string `json:"mfaCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password, payload.MFACode)
	switch {
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:    result.User.ID,
		CompanyID: result.User.CompanyID,
		RoleID:    result.User.RoleID,
		RoleName:  result.User.RoleName,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":        result.User.ID,
			"companyId": result.User.CompanyID,
			"role":      result.User.RoleName,
		},
	}, middleware.GetRequestID(r.Context()))
}

// handleLogout exists for client symmetry; tokens are stateless and expire on
// their own.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]bool{"loggedOut": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	setup, err := h.Service.SetupMFA(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to set up mfa", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, setup, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMFAVerify(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.VerifyMFA(r.Context(), user.UserID, payload.Code); err != nil {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"mfaEnabled": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CompanyID string `json:"companyId"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	companyID := payload.CompanyID
	if user.RoleName == auth.RoleClient {
		// clients can only invite into their own company
		companyID = user.CompanyID
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("companyId", companyID, "companyId is required")
	v.Enum("role", payload.Role, []string{auth.RoleClient, auth.RoleDepartmentHead}, "role must be CLIENT or DEPARTMENT_HEAD")
	v.Required("role", payload.Role, "role is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.Invite(r.Context(), companyID, payload.Email, strings.ToUpper(payload.Role), user.UserID)
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "invite_failed", "failed to create invitation", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Mailer != nil {
		body := "Has sido invitado a la plataforma de nómina. Completa tu registro en " +
			h.AppURL + "/invitations/accept?token=" + result.Token
		if err := h.Mailer.Send(r.Context(), h.EmailFrom, result.Email, "Invitación a Nómina", body); err != nil {
			slog.Warn("invitation email failed", "err", err)
		}
	}
	api.Created(w, map[string]string{"id": result.ID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("token", payload.Token, "token is required")
	v.Required("password", payload.Password, "password is required")
	v.Min("password", len(payload.Password), 8, "password must be at least 8 characters")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	userID, err := h.Service.AcceptInvitation(r.Context(), payload.Token, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvitationInvalid) {
			api.Fail(w, http.StatusBadRequest, "invitation_invalid", "invitation is invalid or expired", middleware.GetRequestID(r.Context()))
			return
		}
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "accept_failed", "failed to accept invitation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"userId": userID}, middleware.GetRequestID(r.Context()))
}

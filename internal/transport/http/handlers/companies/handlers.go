package companieshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/company"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *company.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *company.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/companies", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCompaniesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermCompaniesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermCompaniesRead, h.Perms)).Get("/{companyID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermCompaniesWrite, h.Perms)).Put("/{companyID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermCompaniesWrite, h.Perms)).Post("/{companyID}/advance-status", h.handleAdvanceStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	// company-bound users only ever see their own record
	if user.RoleName == auth.RoleClient || user.RoleName == auth.RoleDepartmentHead {
		c, err := h.Service.Get(r.Context(), user.CompanyID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "companies_failed", "failed to list companies", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, []company.Company{*c}, middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	companies, err := h.Service.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "companies_failed", "failed to list companies", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, companies, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		RFC  string `json:"rfc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	payload.RFC = strings.ToUpper(strings.TrimSpace(payload.RFC))
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("rfc", payload.RFC, "rfc is required")
	if payload.RFC != "" && !company.ValidRFC(payload.RFC) {
		v.Add("rfc", "rfc format is invalid")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), strings.TrimSpace(payload.Name), payload.RFC)
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "company_create_failed", "failed to create company", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	companyID := chi.URLParam(r, "companyID")
	if !user.BelongsTo(companyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return
	}

	c, err := h.Service.Get(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "company not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "company_failed", "failed to load company", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, c, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	companyID := chi.URLParam(r, "companyID")
	if !user.BelongsTo(companyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.Update(r.Context(), companyID, strings.TrimSpace(payload.Name))
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "company not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "company_update_failed", "failed to update company", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	companyID := chi.URLParam(r, "companyID")
	if !user.BelongsTo(companyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.AdvanceStatus(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "company not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "company_status_failed", "failed to advance company status", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

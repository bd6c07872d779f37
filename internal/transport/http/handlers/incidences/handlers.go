package incidenceshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/incidence"
	"nomina/internal/domain/notifications"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *incidence.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Dispatcher
}

func NewHandler(service *incidence.Service, perms middleware.PermissionStore, notify *notifications.Dispatcher) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermIncidencesRead, h.Perms)).Get("/companies/{companyID}/incidencias", h.handleList)
	r.With(middleware.RequirePermission(auth.PermIncidencesWrite, h.Perms)).Post("/companies/{companyID}/incidencias/bulk", h.handleBulkCreate)
	r.Route("/incidencias", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermIncidencesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermIncidencesReview, h.Perms)).Post("/{incidenceID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermIncidencesReview, h.Perms)).Post("/{incidenceID}/reject", h.handleReject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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

	page := shared.ParsePagination(r, 50, 500)
	incidences, err := h.Service.List(r.Context(), user, companyID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incidences_failed", "failed to list incidences", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incidences, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CompanyID   string `json:"companyId"`
		EmployeeID  string `json:"employeeId"`
		Type        string `json:"type"`
		Amount      string `json:"amount"`
		Quantity    string `json:"quantity"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.BelongsTo(payload.CompanyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("companyId", payload.CompanyID, "companyId is required")
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("type", payload.Type, "type is required")
	if payload.Type != "" && !incidence.ValidType(payload.Type) {
		v.Add("type", "type is not in the incidence catalog")
	}
	amount, amountErr := parseAmount(payload.Amount)
	if amountErr != nil {
		v.Add("amount", "amount must be numeric")
	}
	quantity, quantityErr := parseAmount(payload.Quantity)
	if quantityErr != nil {
		v.Add("quantity", "quantity must be numeric")
	}
	date, dateOK := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !dateOK {
		return
	}

	created, err := h.Service.Create(r.Context(), user, incidence.Incidence{
		CompanyID:   payload.CompanyID,
		EmployeeID:  payload.EmployeeID,
		Type:        payload.Type,
		Amount:      amount,
		Quantity:    quantity,
		Date:        date,
		Description: payload.Description,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incidence_create_failed", "failed to create incidence", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBulkCreate(w http.ResponseWriter, r *http.Request) {
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
		Incidencias []incidence.BulkRow `json:"incidencias"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Incidencias) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "incidencias must not be empty", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.BulkCreate(r.Context(), user, companyID, payload.Incidencias)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bulk_create_failed", "failed to import incidences", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

// reviewScope loads the incidence and enforces that review decisions come
// from the owning company itself, never from back-office users.
func (h *Handler) reviewScope(w http.ResponseWriter, r *http.Request) (*incidence.Incidence, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	inc, err := h.Service.Get(r.Context(), chi.URLParam(r, "incidenceID"))
	if err != nil {
		if errors.Is(err, incidence.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "incidence not found", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "incidence_failed", "failed to load incidence", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if user.CompanyID != inc.CompanyID {
		api.Fail(w, http.StatusForbidden, "forbidden", "only the owning company's client may review", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return inc, true
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	inc, ok := h.reviewScope(w, r)
	if !ok {
		return
	}

	updated, events, err := h.Service.Approve(r.Context(), inc.ID)
	if err != nil {
		if errors.Is(err, incidence.ErrInvalidState) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", "incidence is not pending", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "incidence_approve_failed", "failed to approve incidence", middleware.GetRequestID(r.Context()))
		return
	}
	h.Notify.Dispatch(r.Context(), events)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	inc, ok := h.reviewScope(w, r)
	if !ok {
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("reason", payload.Reason, "reason is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, events, err := h.Service.Reject(r.Context(), inc.ID, payload.Reason)
	if err != nil {
		if errors.Is(err, incidence.ErrInvalidState) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", "incidence is not pending", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "incidence_reject_failed", "failed to reject incidence", middleware.GetRequestID(r.Context()))
		return
	}
	h.Notify.Dispatch(r.Context(), events)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

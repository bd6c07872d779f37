package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/company"
	"nomina/internal/domain/notifications"
	"nomina/internal/domain/payroll"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service   *payroll.Service
	Companies *company.Service
	Perms     middleware.PermissionStore
	Notify    *notifications.Dispatcher
}

func NewHandler(service *payroll.Service, companies *company.Service, perms middleware.PermissionStore, notify *notifications.Dispatcher) *Handler {
	return &Handler{Service: service, Companies: companies, Perms: perms, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/companies/{companyID}/payroll", h.handleList)
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/", h.handleCreateDraft)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/{payrollID}/submit", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermPayrollAuthorize, h.Perms)).Post("/{payrollID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermPayrollAuthorize, h.Perms)).Post("/{payrollID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/{payrollID}/register.pdf", h.handleRegisterPDF)
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

	page := shared.ParsePagination(r, 50, 200)
	payrolls, err := h.Service.List(r.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payrolls_failed", "failed to list payrolls", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payrolls, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CompanyID   string `json:"companyId"`
		CalendarID  string `json:"calendarId"`
		PeriodLabel string `json:"periodLabel"`
		From        string `json:"from"`
		To          string `json:"to"`
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
	v.Required("periodLabel", payload.PeriodLabel, "periodLabel is required")
	from, fromOK := v.Date("from", payload.From)
	to, toOK := v.Date("to", payload.To)
	if fromOK && toOK && to.Before(from) {
		v.Add("to", "to must not be before from")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateDraft(r.Context(), payload.CompanyID, payload.CalendarID, payload.PeriodLabel, user.UserID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to create payroll draft", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) payrollScope(w http.ResponseWriter, r *http.Request, strictCompany bool) (*payroll.Payroll, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll not found", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to load payroll", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	// authorization decisions must come from the owning company itself
	if strictCompany && user.CompanyID != p.CompanyID {
		api.Fail(w, http.StatusForbidden, "forbidden", "only the owning company's client may decide", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if !strictCompany && !user.BelongsTo(p.CompanyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return p, true
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.payrollScope(w, r, false)
	if !ok {
		return
	}
	updated, err := h.Service.Submit(r.Context(), p.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidState) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll is not in draft", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_submit_failed", "failed to submit payroll", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	p, ok := h.payrollScope(w, r, true)
	if !ok {
		return
	}
	updated, events, err := h.Service.Approve(r.Context(), p.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidState) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll is not pending authorization", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_approve_failed", "failed to authorize payroll", middleware.GetRequestID(r.Context()))
		return
	}
	h.Notify.Dispatch(r.Context(), events)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.payrollScope(w, r, true)
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

	updated, events, err := h.Service.Reject(r.Context(), p.ID, payload.Reason)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidState) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll is not pending authorization", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_reject_failed", "failed to return payroll", middleware.GetRequestID(r.Context()))
		return
	}
	h.Notify.Dispatch(r.Context(), events)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegisterPDF(w http.ResponseWriter, r *http.Request) {
	p, ok := h.payrollScope(w, r, false)
	if !ok {
		return
	}

	items, err := h.Service.Items(r.Context(), p.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to load payroll items", middleware.GetRequestID(r.Context()))
		return
	}
	companyName := p.CompanyID
	if c, err := h.Companies.Get(r.Context(), p.CompanyID); err == nil {
		companyName = c.Name
	}

	pdf, err := payroll.RegisterPDF(companyName, p, items)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to render payroll register", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="registro-nomina.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

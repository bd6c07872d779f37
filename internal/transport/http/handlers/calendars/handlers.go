package calendarshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/calendar"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *calendar.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *calendar.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermCalendarsWrite, h.Perms)).Post("/payroll-calendars", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermCalendarsRead, h.Perms)).Get("/companies/{companyID}/payroll-calendars", h.handleList)
	r.Route("/payroll-calendars/{calendarID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCalendarsWrite, h.Perms)).Put("/", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermCalendarsWrite, h.Perms)).Delete("/", h.handleDelete)
		r.With(middleware.RequirePermission(auth.PermCalendarsRead, h.Perms)).Get("/periods", h.handleListPeriods)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CompanyID       string `json:"companyId"`
		Name            string `json:"name"`
		PayFrequency    string `json:"payFrequency"`
		StartDate       string `json:"startDate"`
		DaysBeforeClose int    `json:"daysBeforeClose"`
		PayNaturalDays  bool   `json:"payNaturalDays"`
		PeriodNumber    int    `json:"periodNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.BelongsTo(payload.CompanyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.PeriodNumber == 0 {
		payload.PeriodNumber = 1
	}

	v := shared.NewValidator()
	v.Required("companyId", payload.CompanyID, "companyId is required")
	v.Required("name", payload.Name, "name is required")
	v.Required("payFrequency", payload.PayFrequency, "payFrequency is required")
	v.Min("periodNumber", payload.PeriodNumber, 1, "periodNumber must be at least 1")
	v.Min("daysBeforeClose", payload.DaysBeforeClose, 0, "daysBeforeClose must not be negative")
	frequency, freqErr := calendar.ParseFrequency(payload.PayFrequency)
	if payload.PayFrequency != "" && freqErr != nil {
		v.Add("payFrequency", "payFrequency must be semanal, catorcenal, quincenal or mensual")
	}
	startDate, dateOK := v.Date("startDate", payload.StartDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !dateOK {
		return
	}

	result, err := h.Service.Create(r.Context(), calendar.Calendar{
		CompanyID:       payload.CompanyID,
		Name:            payload.Name,
		PayFrequency:    frequency,
		StartDate:       startDate,
		DaysBeforeClose: payload.DaysBeforeClose,
		PayNaturalDays:  payload.PayNaturalDays,
		PeriodNumber:    payload.PeriodNumber,
	})
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "calendar_create_failed", "failed to create payroll calendar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
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

	calendars, err := h.Service.List(r.Context(), companyID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendars_failed", "failed to list payroll calendars", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, calendars, middleware.GetRequestID(r.Context()))
}

func (h *Handler) calendarScope(w http.ResponseWriter, r *http.Request) (*calendar.Calendar, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	cal, err := h.Service.Get(r.Context(), chi.URLParam(r, "calendarID"))
	if err != nil {
		if errors.Is(err, calendar.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll calendar not found", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "calendar_failed", "failed to load payroll calendar", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if !user.BelongsTo(cal.CompanyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return cal, true
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarScope(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name            string `json:"name"`
		DaysBeforeClose int    `json:"daysBeforeClose"`
		PayNaturalDays  bool   `json:"payNaturalDays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Min("daysBeforeClose", payload.DaysBeforeClose, 0, "daysBeforeClose must not be negative")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.Update(r.Context(), cal.ID, payload.Name, payload.DaysBeforeClose, payload.PayNaturalDays)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendar_update_failed", "failed to update payroll calendar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarScope(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), cal.ID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendar_delete_failed", "failed to delete payroll calendar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarScope(w, r)
	if !ok {
		return
	}
	periods, err := h.Service.ListPeriods(r.Context(), cal.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "periods_failed", "failed to list periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

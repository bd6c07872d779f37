package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/employee"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *employee.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/companies/{companyID}/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/bulk-validate", h.handleBulkValidate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/bulk", h.handleBulkCreate)
	})
	r.Route("/employees/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Delete("/", h.handleTerminate)
	})
}

func (h *Handler) companyScope(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	companyID := chi.URLParam(r, "companyID")
	if !user.BelongsTo(companyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return companyID, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyScope(w, r)
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 50, 500)
	emps, total, err := h.Service.List(r.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"employees": emps, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyScope(w, r)
	if !ok {
		return
	}

	var row employee.BulkRow
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Service.ValidateBulk(r.Context(), companyID, []employee.BulkRow{row})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to validate employee", middleware.GetRequestID(r.Context()))
		return
	}
	if !report.Valid {
		issues := make([]shared.ValidationIssue, 0, len(report.Errors))
		for _, e := range report.Errors {
			issues = append(issues, shared.ValidationIssue{Field: e.Field, Reason: e.Error})
		}
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), issues)
		return
	}

	created, err := h.Service.Create(r.Context(), companyID, employee.RowEmployee(row))
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBulkValidate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyScope(w, r)
	if !ok {
		return
	}
	var payload struct {
		Rows []employee.BulkRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Service.ValidateBulk(r.Context(), companyID, payload.Rows)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bulk_validate_failed", "failed to validate rows", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBulkCreate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyScope(w, r)
	if !ok {
		return
	}
	var payload struct {
		Rows []employee.BulkRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Rows) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "rows must not be empty", middleware.GetRequestID(r.Context()))
		return
	}

	report, created, err := h.Service.CreateBulk(r.Context(), companyID, payload.Rows)
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "bulk_create_failed", "failed to import employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"report": report, "created": created}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) employeeScope(w http.ResponseWriter, r *http.Request) (*employee.Employee, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "employee_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if !user.BelongsTo(emp.CompanyID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "company access denied", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return emp, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeScope(w, r)
	if !ok {
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeScope(w, r)
	if !ok {
		return
	}

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Email != "" && !employee.ValidEmail(payload.Email) {
		v.Add("email", "email format is invalid")
	}
	v.Enum("gender", payload.Gender, employee.Genders, "gender is not an allowed value")
	v.Enum("maritalStatus", payload.MaritalStatus, employee.MaritalStatuses, "maritalStatus is not an allowed value")
	v.Enum("contractType", payload.ContractType, employee.ContractTypes, "contractType is not an allowed value")
	v.Enum("zone", payload.Zone, employee.Zones, "zone is not an allowed value")
	v.Enum("salaryType", payload.SalaryType, employee.SalaryTypes, "salaryType is not an allowed value")
	v.Enum("status", payload.Status, []string{
		employee.StatusActive, employee.StatusInactive, employee.StatusTerminated, employee.StatusOnLeave,
	}, "status is not an allowed value")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if payload.Status == "" {
		payload.Status = emp.Status
	}

	updated, err := h.Service.Update(r.Context(), emp.ID, payload)
	if err != nil {
		if msg, ok := shared.DuplicateMessage(err); ok {
			api.Fail(w, http.StatusConflict, "duplicate", msg, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

// handleTerminate is the soft delete: the employee flips to TERMINATED and
// the company counter drops by one.
func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeScope(w, r)
	if !ok {
		return
	}
	if err := h.Service.Terminate(r.Context(), emp.ID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found or already terminated", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_terminate_failed", "failed to terminate employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": employee.StatusTerminated}, middleware.GetRequestID(r.Context()))
}

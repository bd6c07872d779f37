package incidence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/employee"
	"nomina/internal/domain/notifications"
)

type Service struct {
	store     *Store
	employees *employee.Service
}

func NewService(store *Store, employees *employee.Service) *Service {
	return &Service{store: store, employees: employees}
}

func (s *Service) Create(ctx context.Context, user auth.UserContext, inc Incidence) (*Incidence, error) {
	inc.CreatedBy = user.UserID
	inc.CreatorRole = user.RoleName
	inc.Status = InitialStatus(user.RoleName)
	return s.store.CreateIncidence(ctx, inc)
}

func (s *Service) Get(ctx context.Context, incidenceID string) (*Incidence, error) {
	return s.store.GetIncidence(ctx, incidenceID)
}

// List applies the role visibility filter: operators only see APPROVED
// incidences, clients and department heads see every status.
func (s *Service) List(ctx context.Context, user auth.UserContext, companyID string, limit, offset int) ([]Incidence, error) {
	onlyApproved := user.RoleName == auth.RoleOperator
	return s.store.ListIncidences(ctx, companyID, onlyApproved, limit, offset)
}

// Approve moves a pending incidence to APPROVED and notifies its creator.
func (s *Service) Approve(ctx context.Context, incidenceID string) (*Incidence, []notifications.Event, error) {
	inc, err := s.store.GetIncidence(ctx, incidenceID)
	if err != nil {
		return nil, nil, err
	}
	if inc.Status != StatusPending {
		return nil, nil, ErrInvalidState
	}
	updated, err := s.store.SetStatus(ctx, incidenceID, StatusApproved)
	if err != nil {
		return nil, nil, err
	}
	events := []notifications.Event{{
		CompanyID: inc.CompanyID,
		UserID:    inc.CreatedBy,
		Type:      notifications.TypeIncidenceApproved,
		Title:     "Incidencia aprobada",
		Body:      fmt.Sprintf("La incidencia %s del %s fue aprobada.", inc.Type, inc.Date.Format("2006-01-02")),
	}}
	return updated, events, nil
}

// Reject moves a pending incidence to REJECTED, folding the reason into the
// description, and notifies the creator.
func (s *Service) Reject(ctx context.Context, incidenceID, reason string) (*Incidence, []notifications.Event, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, nil, ErrReasonMissing
	}
	inc, err := s.store.GetIncidence(ctx, incidenceID)
	if err != nil {
		return nil, nil, err
	}
	if inc.Status != StatusPending {
		return nil, nil, ErrInvalidState
	}
	updated, err := s.store.Reject(ctx, incidenceID, RejectDescription(inc.Description, reason))
	if err != nil {
		return nil, nil, err
	}
	events := []notifications.Event{{
		CompanyID: inc.CompanyID,
		UserID:    inc.CreatedBy,
		Type:      notifications.TypeIncidenceRejected,
		Title:     "Incidencia rechazada",
		Body:      fmt.Sprintf("La incidencia %s del %s fue rechazada: %s", inc.Type, inc.Date.Format("2006-01-02"), reason),
	}}
	return updated, events, nil
}

// BulkRow is one row of an incidence import. Employee identification comes
// as free text: a numeric employee number or a full name.
type BulkRow struct {
	Employee    string `json:"employee"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Quantity    string `json:"quantity"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type BulkResult struct {
	Created           int      `json:"created"`
	Skipped           int      `json:"skipped"`
	EmployeesNotFound []string `json:"employeesNotFound"`
}

// BulkCreate matches each row to an employee by numeric employee number
// first, then by accent/case-insensitive full name. Unmatched rows are
// collected in employeesNotFound; invalid rows are skipped. Neither aborts
// the batch.
func (s *Service) BulkCreate(ctx context.Context, user auth.UserContext, companyID string, rows []BulkRow) (BulkResult, error) {
	result := BulkResult{EmployeesNotFound: []string{}}

	targets, err := s.employees.MatchTargets(ctx, companyID)
	if err != nil {
		return result, err
	}
	byNumber := make(map[string]string, len(targets))
	byName := make(map[string]string, len(targets))
	for _, t := range targets {
		byNumber[strings.TrimSpace(t.EmployeeNumber)] = t.ID
		byName[employee.NormalizeName(t.FullName)] = t.ID
	}

	for _, row := range rows {
		employeeID := matchEmployee(row.Employee, byNumber, byName)
		if employeeID == "" {
			result.EmployeesNotFound = append(result.EmployeesNotFound, row.Employee)
			continue
		}

		inc, ok := rowIncidence(row, companyID, employeeID)
		if !ok {
			result.Skipped++
			continue
		}
		inc.CreatedBy = user.UserID
		inc.CreatorRole = user.RoleName
		inc.Status = InitialStatus(user.RoleName)
		if _, err := s.store.CreateIncidence(ctx, inc); err != nil {
			return result, err
		}
		result.Created++
	}
	return result, nil
}

func matchEmployee(raw string, byNumber, byName map[string]string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ""
	}
	if isNumeric(key) {
		return byNumber[key]
	}
	return byName[employee.NormalizeName(key)]
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func rowIncidence(row BulkRow, companyID, employeeID string) (Incidence, bool) {
	if !ValidType(row.Type) {
		return Incidence{}, false
	}
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return Incidence{}, false
	}
	amount, err := parseDecimal(row.Amount)
	if err != nil {
		return Incidence{}, false
	}
	quantity, err := parseDecimal(row.Quantity)
	if err != nil {
		return Incidence{}, false
	}
	return Incidence{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Type:        row.Type,
		Amount:      amount,
		Quantity:    quantity,
		Date:        date,
		Description: row.Description,
	}, true
}

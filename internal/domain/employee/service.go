package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, companyID string, e Employee) (*Employee, error) {
	return s.store.CreateEmployee(ctx, companyID, e)
}

func (s *Service) Get(ctx context.Context, employeeID string) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Employee, int, error) {
	emps, err := s.store.ListEmployees(ctx, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountEmployees(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	return emps, total, nil
}

func (s *Service) Update(ctx context.Context, employeeID string, e Employee) (*Employee, error) {
	return s.store.UpdateEmployee(ctx, employeeID, e)
}

func (s *Service) Terminate(ctx context.Context, employeeID string) error {
	return s.store.Terminate(ctx, employeeID)
}

func (s *Service) ValidateBulk(ctx context.Context, companyID string, rows []BulkRow) (Report, error) {
	existing, err := s.store.ExistingIdentifiers(ctx, companyID, rows)
	if err != nil {
		return Report{}, err
	}
	return ValidateRows(rows, existing), nil
}

// CreateBulk validates the whole batch and inserts only when the report is
// clean. A report with errors comes back with created == 0 and no rows
// persisted.
func (s *Service) CreateBulk(ctx context.Context, companyID string, rows []BulkRow) (Report, int, error) {
	report, err := s.ValidateBulk(ctx, companyID, rows)
	if err != nil {
		return Report{}, 0, err
	}
	if !report.Valid {
		return report, 0, nil
	}

	emps := make([]Employee, 0, len(rows))
	for _, row := range rows {
		emps = append(emps, RowEmployee(row))
	}
	created, err := s.store.CreateBulk(ctx, companyID, emps)
	if err != nil {
		return report, 0, err
	}
	return report, created, nil
}

func (s *Service) MatchTargets(ctx context.Context, companyID string) ([]MatchTarget, error) {
	return s.store.MatchTargets(ctx, companyID)
}

// RowEmployee converts a validated import row. Callers must have run the row
// through ValidateRows first; parse failures fall back to zero values.
func RowEmployee(row BulkRow) Employee {
	salary, _ := decimal.NewFromString(row.Salary)
	hireDate, _ := time.Parse("2006-01-02", row.HireDate)
	return Employee{
		EmployeeNumber: row.EmployeeNumber,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		SecondLastName: row.SecondLastName,
		RFC:            row.RFC,
		CURP:           row.CURP,
		NSS:            NormalizeNSS(row.NSS),
		Email:          row.Email,
		Gender:         row.Gender,
		MaritalStatus:  row.MaritalStatus,
		ContractType:   row.ContractType,
		Zone:           row.Zone,
		SalaryType:     row.SalaryType,
		Salary:         salary,
		HireDate:       hireDate,
		Position:       row.Position,
		Department:     row.Department,
		Area:           row.Area,
	}
}

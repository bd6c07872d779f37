package incidence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const incidenceColumns = `
    id, company_id, employee_id, created_by, creator_role,
    type, amount, quantity, date, status, COALESCE(description, ''),
    created_at, updated_at`

func scanIncidence(row pgx.Row) (*Incidence, error) {
	var inc Incidence
	err := row.Scan(
		&inc.ID, &inc.CompanyID, &inc.EmployeeID, &inc.CreatedBy, &inc.CreatorRole,
		&inc.Type, &inc.Amount, &inc.Quantity, &inc.Date, &inc.Status, &inc.Description,
		&inc.CreatedAt, &inc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

func (s *Store) CreateIncidence(ctx context.Context, inc Incidence) (*Incidence, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO incidences
      (company_id, employee_id, created_by, creator_role, type, amount, quantity, date, status, description)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
    RETURNING `+incidenceColumns+`
  `, inc.CompanyID, inc.EmployeeID, inc.CreatedBy, inc.CreatorRole,
		inc.Type, inc.Amount, inc.Quantity, inc.Date, inc.Status, inc.Description)
	return scanIncidence(row)
}

func (s *Store) GetIncidence(ctx context.Context, incidenceID string) (*Incidence, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+incidenceColumns+`
    FROM incidences
    WHERE id = $1
  `, incidenceID)
	return scanIncidence(row)
}

// ListIncidences returns the company's incidences, restricted to APPROVED
// when onlyApproved is set (the operator's payroll-ready view).
func (s *Store) ListIncidences(ctx context.Context, companyID string, onlyApproved bool, limit, offset int) ([]Incidence, error) {
	query := `
    SELECT ` + incidenceColumns + `
    FROM incidences
    WHERE company_id = $1 AND ($2 = false OR status = $3)
    ORDER BY date DESC, created_at DESC
    LIMIT $4 OFFSET $5`

	rows, err := s.DB.Query(ctx, query, companyID, onlyApproved, StatusApproved, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Incidence
	for rows.Next() {
		var inc Incidence
		if err := rows.Scan(
			&inc.ID, &inc.CompanyID, &inc.EmployeeID, &inc.CreatedBy, &inc.CreatorRole,
			&inc.Type, &inc.Amount, &inc.Quantity, &inc.Date, &inc.Status, &inc.Description,
			&inc.CreatedAt, &inc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, nil
}

func (s *Store) SetStatus(ctx context.Context, incidenceID, status string) (*Incidence, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE incidences SET status = $2, updated_at = now()
    WHERE id = $1
    RETURNING `+incidenceColumns+`
  `, incidenceID, status)
	return scanIncidence(row)
}

func (s *Store) Reject(ctx context.Context, incidenceID, description string) (*Incidence, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE incidences SET status = $2, description = $3, updated_at = now()
    WHERE id = $1
    RETURNING `+incidenceColumns+`
  `, incidenceID, StatusRejected, description)
	return scanIncidence(row)
}

// ApprovedInRange feeds payroll draft creation with the period's approved
// incidences.
func (s *Store) ApprovedInRange(ctx context.Context, companyID string, from, to time.Time) ([]Incidence, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+incidenceColumns+`
    FROM incidences
    WHERE company_id = $1 AND status = $2 AND date BETWEEN $3 AND $4
    ORDER BY employee_id, date
  `, companyID, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Incidence
	for rows.Next() {
		var inc Incidence
		if err := rows.Scan(
			&inc.ID, &inc.CompanyID, &inc.EmployeeID, &inc.CreatedBy, &inc.CreatorRole,
			&inc.Type, &inc.Amount, &inc.Quantity, &inc.Date, &inc.Status, &inc.Description,
			&inc.CreatedAt, &inc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, nil
}

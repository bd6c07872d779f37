package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const payrollColumns = `id, company_id, COALESCE(calendar_id::text, ''), period_label,
    status, created_by, created_at, updated_at`

func scanPayroll(row pgx.Row) (*Payroll, error) {
	var p Payroll
	err := row.Scan(&p.ID, &p.CompanyID, &p.CalendarID, &p.PeriodLabel,
		&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayroll persists the run and its items in one transaction.
func (s *Store) CreatePayroll(ctx context.Context, p Payroll, items []Item) (*Payroll, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
    INSERT INTO payrolls (company_id, calendar_id, period_label, status, created_by)
    VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5)
    RETURNING `+payrollColumns+`
  `, p.CompanyID, p.CalendarID, p.PeriodLabel, StatusDraft, p.CreatedBy)
	created, err := scanPayroll(row)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO payroll_items (payroll_id, employee_id, amount)
      VALUES ($1, $2, $3)
    `, created.ID, item.EmployeeID, item.Amount); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) GetPayroll(ctx context.Context, payrollID string) (*Payroll, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+payrollColumns+`
    FROM payrolls
    WHERE id = $1
  `, payrollID)
	return scanPayroll(row)
}

func (s *Store) ListPayrolls(ctx context.Context, companyID string, limit, offset int) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payrollColumns+`
    FROM payrolls
    WHERE company_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payroll
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.CalendarID, &p.PeriodLabel,
			&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) ListItems(ctx context.Context, payrollID string) ([]Item, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pi.id, pi.payroll_id, pi.employee_id,
           e.first_name || ' ' || e.last_name || COALESCE(' ' || e.second_last_name, ''),
           pi.amount
    FROM payroll_items pi
    JOIN employees e ON e.id = pi.employee_id
    WHERE pi.payroll_id = $1
    ORDER BY e.employee_number
  `, payrollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.PayrollID, &item.EmployeeID, &item.EmployeeName, &item.Amount); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Store) SetStatus(ctx context.Context, payrollID, status string) (*Payroll, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE payrolls SET status = $2, updated_at = now()
    WHERE id = $1
    RETURNING `+payrollColumns+`
  `, payrollID, status)
	return scanPayroll(row)
}

// ActiveOperatorIDs lists recipients for payroll decision broadcasts.
func (s *Store) ActiveOperatorIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id
    FROM users u
    JOIN roles r ON r.id = u.role_id
    WHERE r.name = 'OPERATOR' AND u.status = 'active'
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

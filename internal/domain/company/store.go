package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("company not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const companyColumns = `id, name, rfc, status, employees_count, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.RFC, &c.Status, &c.EmployeesCount, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCompany(ctx context.Context, name, rfc string) (*Company, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO companies (name, rfc, status)
    VALUES ($1, $2, $3)
    RETURNING `+companyColumns+`
  `, name, rfc, StatusInSetup)
	return scanCompany(row)
}

func (s *Store) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+companyColumns+`
    FROM companies
    WHERE id = $1
  `, companyID)
	return scanCompany(row)
}

func (s *Store) ListCompanies(ctx context.Context, limit, offset int) ([]Company, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+companyColumns+`
    FROM companies
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.RFC, &c.Status, &c.EmployeesCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpdateCompany(ctx context.Context, companyID, name string) (*Company, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE companies SET name = $2, updated_at = now()
    WHERE id = $1
    RETURNING `+companyColumns+`
  `, companyID, name)
	return scanCompany(row)
}

func (s *Store) SetStatus(ctx context.Context, companyID, status string) (*Company, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE companies SET status = $2, updated_at = now()
    WHERE id = $1
    RETURNING `+companyColumns+`
  `, companyID, status)
	return scanCompany(row)
}

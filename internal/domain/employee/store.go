package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, company_id, COALESCE(user_id::text, ''), employee_number,
    first_name, last_name, COALESCE(second_last_name, ''),
    rfc, curp, nss, email,
    gender, marital_status, contract_type, zone, salary_type, salary,
    hire_date, COALESCE(position, ''), COALESCE(department, ''), COALESCE(area, ''),
    status, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.EmployeeNumber,
		&e.FirstName, &e.LastName, &e.SecondLastName,
		&e.RFC, &e.CURP, &e.NSS, &e.Email,
		&e.Gender, &e.MaritalStatus, &e.ContractType, &e.Zone, &e.SalaryType, &e.Salary,
		&e.HireDate, &e.Position, &e.Department, &e.Area,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const insertEmployeeSQL = `
    INSERT INTO employees (
      company_id, employee_number, first_name, last_name, second_last_name,
      rfc, curp, nss, email,
      gender, marital_status, contract_type, zone, salary_type, salary,
      hire_date, position, department, area, status
    ) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9,
              $10, $11, $12, $13, $14, $15,
              $16, NULLIF($17, ''), NULLIF($18, ''), NULLIF($19, ''), $20)
    RETURNING id`

func insertArgs(companyID string, e Employee) []any {
	return []any{
		companyID, e.EmployeeNumber, e.FirstName, e.LastName, e.SecondLastName,
		e.RFC, e.CURP, e.NSS, strings.ToLower(e.Email),
		e.Gender, e.MaritalStatus, e.ContractType, e.Zone, e.SalaryType, e.Salary,
		e.HireDate, e.Position, e.Department, e.Area, StatusActive,
	}
}

// CreateEmployee inserts the employee and bumps the company counter in one
// transaction.
func (s *Store) CreateEmployee(ctx context.Context, companyID string, e Employee) (*Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	if err := tx.QueryRow(ctx, insertEmployeeSQL, insertArgs(companyID, e)...).Scan(&id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
    UPDATE companies SET employees_count = employees_count + 1, updated_at = now()
    WHERE id = $1
  `, companyID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetEmployee(ctx, id)
}

// CreateBulk inserts every employee or none, bumping the counter by the
// inserted count.
func (s *Store) CreateBulk(ctx context.Context, companyID string, emps []Employee) (int, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, e := range emps {
		if _, err := tx.Exec(ctx, insertEmployeeSQL, insertArgs(companyID, e)...); err != nil {
			return 0, err
		}
	}
	if _, err := tx.Exec(ctx, `
    UPDATE companies SET employees_count = employees_count + $2, updated_at = now()
    WHERE id = $1
  `, companyID, len(emps)); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(emps), nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT`+employeeColumns+` FROM employees WHERE id = $1`, employeeID)
	return scanEmployee(row)
}

func (s *Store) ListEmployees(ctx context.Context, companyID string, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE company_id = $1
    ORDER BY employee_number
    LIMIT $2 OFFSET $3
  `, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.UserID, &e.EmployeeNumber,
			&e.FirstName, &e.LastName, &e.SecondLastName,
			&e.RFC, &e.CURP, &e.NSS, &e.Email,
			&e.Gender, &e.MaritalStatus, &e.ContractType, &e.Zone, &e.SalaryType, &e.Salary,
			&e.HireDate, &e.Position, &e.Department, &e.Area,
			&e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) CountEmployees(ctx context.Context, companyID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE company_id = $1", companyID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, e Employee) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees SET
      first_name = $2, last_name = $3, second_last_name = NULLIF($4, ''),
      email = $5, gender = $6, marital_status = $7, contract_type = $8,
      zone = $9, salary_type = $10, salary = $11,
      position = NULLIF($12, ''), department = NULLIF($13, ''), area = NULLIF($14, ''),
      status = $15, updated_at = now()
    WHERE id = $1
    RETURNING`+employeeColumns+`
  `, employeeID,
		e.FirstName, e.LastName, e.SecondLastName,
		strings.ToLower(e.Email), e.Gender, e.MaritalStatus, e.ContractType,
		e.Zone, e.SalaryType, e.Salary,
		e.Position, e.Department, e.Area, e.Status)
	return scanEmployee(row)
}

// Terminate is the soft delete. The counter only moves when the status
// actually changes.
func (s *Store) Terminate(ctx context.Context, employeeID string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE employees SET status = $2, updated_at = now()
    WHERE id = $1 AND status <> $2
  `, employeeID, StatusTerminated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx, `
    UPDATE companies SET employees_count = GREATEST(employees_count - 1, 0), updated_at = now()
    WHERE id = (SELECT company_id FROM employees WHERE id = $1)
  `, employeeID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ExistingIdentifiers collects identifiers already in the database for the
// bulk-validation report. employeeNumber/curp/nss are company-scoped;
// rfc/email are global.
func (s *Store) ExistingIdentifiers(ctx context.Context, companyID string, rows []BulkRow) (Existing, error) {
	existing := Existing{
		Numbers: map[string]bool{},
		RFCs:    map[string]bool{},
		CURPs:   map[string]bool{},
		NSS:     map[string]bool{},
		Emails:  map[string]bool{},
	}

	numbers := make([]string, 0, len(rows))
	rfcs := make([]string, 0, len(rows))
	curps := make([]string, 0, len(rows))
	nss := make([]string, 0, len(rows))
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, strings.TrimSpace(row.EmployeeNumber))
		rfcs = append(rfcs, row.RFC)
		curps = append(curps, row.CURP)
		nss = append(nss, NormalizeNSS(row.NSS))
		emails = append(emails, strings.ToLower(row.Email))
	}

	scoped := func(dst map[string]bool, column string, values []string) error {
		rs, err := s.DB.Query(ctx, `
      SELECT `+column+` FROM employees
      WHERE company_id = $1 AND `+column+` = ANY($2)
    `, companyID, values)
		if err != nil {
			return err
		}
		defer rs.Close()
		for rs.Next() {
			var v string
			if err := rs.Scan(&v); err != nil {
				return err
			}
			dst[v] = true
		}
		return rs.Err()
	}
	global := func(dst map[string]bool, column string, values []string) error {
		rs, err := s.DB.Query(ctx, `
      SELECT `+column+` FROM employees WHERE `+column+` = ANY($1)
    `, values)
		if err != nil {
			return err
		}
		defer rs.Close()
		for rs.Next() {
			var v string
			if err := rs.Scan(&v); err != nil {
				return err
			}
			dst[v] = true
		}
		return rs.Err()
	}

	if err := scoped(existing.Numbers, "employee_number", numbers); err != nil {
		return existing, err
	}
	if err := scoped(existing.CURPs, "curp", curps); err != nil {
		return existing, err
	}
	if err := scoped(existing.NSS, "nss", nss); err != nil {
		return existing, err
	}
	if err := global(existing.RFCs, "rfc", rfcs); err != nil {
		return existing, err
	}
	if err := global(existing.Emails, "email", emails); err != nil {
		return existing, err
	}
	return existing, nil
}

// MatchTarget is the lookup view used when matching bulk incidence rows to
// employees.
type MatchTarget struct {
	ID             string
	EmployeeNumber string
	FullName       string
}

func (s *Store) MatchTargets(ctx context.Context, companyID string) ([]MatchTarget, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_number,
           first_name || ' ' || last_name || COALESCE(' ' || second_last_name, '')
    FROM employees
    WHERE company_id = $1 AND status <> $2
  `, companyID, StatusTerminated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchTarget
	for rows.Next() {
		var t MatchTarget
		if err := rows.Scan(&t.ID, &t.EmployeeNumber, &t.FullName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

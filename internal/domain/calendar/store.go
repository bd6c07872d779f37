package calendar

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

const calendarColumns = `id, company_id, name, pay_frequency, start_date,
    days_before_close, pay_natural_days, period_number, created_at, updated_at`

func scanCalendar(row pgx.Row) (*Calendar, error) {
	var c Calendar
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.PayFrequency, &c.StartDate,
		&c.DaysBeforeClose, &c.PayNaturalDays, &c.PeriodNumber, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCalendar persists the calendar and its generated periods in one
// transaction.
func (s *Store) CreateCalendar(ctx context.Context, c Calendar, periods []Period) (*Calendar, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
    INSERT INTO payroll_calendars
      (company_id, name, pay_frequency, start_date, days_before_close, pay_natural_days, period_number)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING `+calendarColumns+`
  `, c.CompanyID, c.Name, c.PayFrequency, c.StartDate, c.DaysBeforeClose, c.PayNaturalDays, c.PeriodNumber)
	created, err := scanCalendar(row)
	if err != nil {
		return nil, err
	}

	for _, p := range periods {
		if _, err := tx.Exec(ctx, `
      INSERT INTO payroll_calendar_periods
        (calendar_id, number, start_date, end_date, payment_date, status)
      VALUES ($1, $2, $3, $4, $5, $6)
    `, created.ID, p.Number, p.StartDate, p.EndDate, p.PaymentDate, p.Status); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) GetCalendar(ctx context.Context, calendarID string) (*Calendar, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+calendarColumns+`
    FROM payroll_calendars
    WHERE id = $1
  `, calendarID)
	return scanCalendar(row)
}

func (s *Store) ListCalendars(ctx context.Context, companyID string) ([]Calendar, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+calendarColumns+`
    FROM payroll_calendars
    WHERE company_id = $1
    ORDER BY created_at
  `, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calendar
	for rows.Next() {
		var c Calendar
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.PayFrequency, &c.StartDate,
			&c.DaysBeforeClose, &c.PayNaturalDays, &c.PeriodNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpdateCalendar(ctx context.Context, calendarID, name string, daysBeforeClose int, payNaturalDays bool) (*Calendar, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE payroll_calendars
    SET name = $2, days_before_close = $3, pay_natural_days = $4, updated_at = now()
    WHERE id = $1
    RETURNING `+calendarColumns+`
  `, calendarID, name, daysBeforeClose, payNaturalDays)
	return scanCalendar(row)
}

// DeleteCalendar removes the calendar and its periods together.
func (s *Store) DeleteCalendar(ctx context.Context, calendarID string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM payroll_calendar_periods WHERE calendar_id = $1", calendarID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM payroll_calendars WHERE id = $1", calendarID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) ListPeriods(ctx context.Context, calendarID string) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, calendar_id, number, start_date, end_date, payment_date, status
    FROM payroll_calendar_periods
    WHERE calendar_id = $1
    ORDER BY number
  `, calendarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.CalendarID, &p.Number, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

package shared

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// duplicateMessages maps unique-constraint names to user-facing text so
// storage vocabulary never leaks into responses.
var duplicateMessages = map[string]string{
	"companies_rfc_key":             "RFC already exists",
	"employees_company_number_key":  "employee number already exists for this company",
	"employees_rfc_key":             "RFC already exists",
	"employees_curp_company_key":    "CURP already exists for this company",
	"employees_nss_company_key":     "NSS already exists for this company",
	"employees_email_key":           "email already exists",
	"users_email_key":               "email already exists",
	"payroll_calendars_company_key": "a calendar with this name already exists for the company",
}

// DuplicateMessage reports whether err is a Postgres unique violation and
// returns the translated message for it.
func DuplicateMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	if msg, ok := duplicateMessages[pgErr.ConstraintName]; ok {
		return msg, true
	}
	return "record already exists", true
}

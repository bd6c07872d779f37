package employee

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	rfcPattern   = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z\d]{3}$`)
	curpPattern  = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}\d{6}[HM][A-Z]{2}[B-DF-HJ-NP-TV-Z]{3}[A-Z\d]\d$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

func ValidRFC(rfc string) bool {
	return rfcPattern.MatchString(rfc)
}

func ValidCURP(curp string) bool {
	return curpPattern.MatchString(curp)
}

// NormalizeNSS strips separators; a valid NSS is 11 digits after stripping.
func NormalizeNSS(nss string) string {
	return nonDigits.ReplaceAllString(nss, "")
}

func ValidNSS(nss string) bool {
	return len(NormalizeNSS(nss)) == 11
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// BulkRow is one row of an import file, untyped as it arrives from the
// spreadsheet front end.
type BulkRow struct {
	EmployeeNumber string `json:"employeeNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	RFC            string `json:"rfc"`
	CURP           string `json:"curp"`
	NSS            string `json:"nss"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	MaritalStatus  string `json:"maritalStatus"`
	ContractType   string `json:"contractType"`
	Zone           string `json:"zone"`
	SalaryType     string `json:"salaryType"`
	Salary         string `json:"salary"`
	HireDate       string `json:"hireDate"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Area           string `json:"area"`
}

type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

type Report struct {
	Valid    bool       `json:"valid"`
	Errors   []RowError `json:"errors"`
	Warnings []string   `json:"warnings"`
}

// Existing holds identifiers already present in the database, keyed by their
// normalized form. employeeNumber/curp/nss are scoped to the company;
// rfc/email are global.
type Existing struct {
	Numbers map[string]bool
	RFCs    map[string]bool
	CURPs   map[string]bool
	NSS     map[string]bool
	Emails  map[string]bool
}

// ValidateRows checks every row and always returns a full report, never an
// error, so the caller can render a correction UI. Rows are numbered from 1.
func ValidateRows(rows []BulkRow, existing Existing) Report {
	report := Report{Errors: []RowError{}, Warnings: []string{}}

	numberCounts := map[string]int{}
	for _, row := range rows {
		if n := strings.TrimSpace(row.EmployeeNumber); n != "" {
			numberCounts[n]++
		}
	}

	for i, row := range rows {
		n := i + 1
		addErr := func(field, msg string) {
			report.Errors = append(report.Errors, RowError{Row: n, Field: field, Error: msg})
		}

		required := []struct{ field, value string }{
			{"employeeNumber", row.EmployeeNumber},
			{"firstName", row.FirstName},
			{"lastName", row.LastName},
			{"rfc", row.RFC},
			{"curp", row.CURP},
			{"nss", row.NSS},
			{"email", row.Email},
			{"salary", row.Salary},
			{"hireDate", row.HireDate},
		}
		for _, req := range required {
			if strings.TrimSpace(req.value) == "" {
				addErr(req.field, "campo requerido")
			}
		}

		number := strings.TrimSpace(row.EmployeeNumber)
		if number != "" && numberCounts[number] > 1 {
			addErr("employeeNumber", "número de empleado duplicado en el archivo")
		}
		if number != "" && existing.Numbers[number] {
			addErr("employeeNumber", "número de empleado ya registrado")
		}

		if row.RFC != "" {
			if !ValidRFC(row.RFC) {
				addErr("rfc", "RFC con formato inválido")
			} else if existing.RFCs[row.RFC] {
				addErr("rfc", "RFC ya registrado")
			}
		}
		if row.CURP != "" {
			if !ValidCURP(row.CURP) {
				addErr("curp", "CURP con formato inválido")
			} else if existing.CURPs[row.CURP] {
				addErr("curp", "CURP ya registrada")
			}
		}
		if row.NSS != "" {
			if !ValidNSS(row.NSS) {
				addErr("nss", "NSS debe tener 11 dígitos")
			} else if existing.NSS[NormalizeNSS(row.NSS)] {
				addErr("nss", "NSS ya registrado")
			}
		}
		if row.Email != "" {
			if !ValidEmail(row.Email) {
				addErr("email", "correo con formato inválido")
			} else if existing.Emails[strings.ToLower(row.Email)] {
				addErr("email", "correo ya registrado")
			}
		}

		checkEnum(&report, n, "gender", row.Gender, Genders)
		checkEnum(&report, n, "maritalStatus", row.MaritalStatus, MaritalStatuses)
		checkEnum(&report, n, "contractType", row.ContractType, ContractTypes)
		checkEnum(&report, n, "zone", row.Zone, Zones)
		checkEnum(&report, n, "salaryType", row.SalaryType, SalaryTypes)

		if row.Salary != "" {
			salary, err := decimal.NewFromString(row.Salary)
			if err != nil {
				addErr("salary", "salario debe ser numérico")
			} else if !salary.IsPositive() {
				report.Warnings = append(report.Warnings, fmt.Sprintf("fila %d: salario no es positivo", n))
			}
		}
		if row.HireDate != "" {
			if _, err := time.Parse("2006-01-02", row.HireDate); err != nil {
				addErr("hireDate", "fecha de ingreso debe ser YYYY-MM-DD")
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func checkEnum(report *Report, row int, field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, v := range allowed {
		if v == value {
			return
		}
	}
	report.Errors = append(report.Errors, RowError{
		Row:   row,
		Field: field,
		Error: fmt.Sprintf("valor no permitido, use uno de: %s", strings.Join(allowed, ", ")),
	})
}

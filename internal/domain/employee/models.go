package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
	StatusOnLeave    = "ON_LEAVE"
)

var (
	Genders         = []string{"MASCULINO", "FEMENINO"}
	MaritalStatuses = []string{"SOLTERO", "CASADO", "DIVORCIADO", "VIUDO", "UNION_LIBRE"}
	ContractTypes   = []string{"INDETERMINADO", "DETERMINADO", "OBRA_DETERMINADA", "CAPACITACION_INICIAL", "PERIODO_PRUEBA"}
	Zones           = []string{"GENERAL", "FRONTERA_NORTE"}
	SalaryTypes     = []string{"FIJO", "VARIABLE", "MIXTO"}
)

type Employee struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"companyId"`
	UserID         string          `json:"userId,omitempty"`
	EmployeeNumber string          `json:"employeeNumber"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	SecondLastName string          `json:"secondLastName,omitempty"`
	RFC            string          `json:"rfc"`
	CURP           string          `json:"curp"`
	NSS            string          `json:"nss"`
	Email          string          `json:"email"`
	Gender         string          `json:"gender"`
	MaritalStatus  string          `json:"maritalStatus"`
	ContractType   string          `json:"contractType"`
	Zone           string          `json:"zone"`
	SalaryType     string          `json:"salaryType"`
	Salary         decimal.Decimal `json:"salary"`
	HireDate       time.Time       `json:"hireDate"`
	Position       string          `json:"position,omitempty"`
	Department     string          `json:"department,omitempty"`
	Area           string          `json:"area,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// FullName is the display name used for fuzzy matching in bulk imports.
func (e Employee) FullName() string {
	name := e.FirstName + " " + e.LastName
	if e.SecondLastName != "" {
		name += " " + e.SecondLastName
	}
	return name
}

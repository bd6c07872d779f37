package payroll

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft                = "DRAFT"
	StatusPendingAuthorization = "PENDING_AUTHORIZATION"
	StatusAuthorized           = "AUTHORIZED"
)

var (
	ErrNotFound      = errors.New("payroll not found")
	ErrInvalidState  = errors.New("payroll is not in a state that allows this transition")
	ErrReasonMissing = errors.New("rejection reason is required")
)

type Payroll struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	CalendarID  string    `json:"calendarId,omitempty"`
	PeriodLabel string    `json:"periodLabel"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Item struct {
	ID           string          `json:"id"`
	PayrollID    string          `json:"payrollId"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

package incidence

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Types is the allowed incidence catalog.
var Types = []string{
	"FALTA",
	"RETARDO",
	"HORAS_EXTRA",
	"BONO",
	"COMISION",
	"DESCUENTO",
	"INCAPACIDAD",
	"VACACIONES",
	"PRIMA_DOMINICAL",
	"OTRO",
}

func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Incidence struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId"`
	EmployeeID    string          `json:"employeeId"`
	CreatedBy     string          `json:"createdBy"`
	CreatorRole   string          `json:"creatorRole"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Quantity      decimal.Decimal `json:"quantity"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

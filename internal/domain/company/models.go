package company

import "time"

const (
	StatusInSetup    = "IN_SETUP"
	StatusConfigured = "CONFIGURED"
	StatusActive     = "ACTIVE"
)

type Company struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RFC            string    `json:"rfc"`
	Status         string    `json:"status"`
	EmployeesCount int       `json:"employeesCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

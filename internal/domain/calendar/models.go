package calendar

import (
	"strings"
	"time"
)

type Frequency string

const (
	FrequencySemanal    Frequency = "semanal"
	FrequencyCatorcenal Frequency = "catorcenal"
	FrequencyQuincenal  Frequency = "quincenal"
	FrequencyMensual    Frequency = "mensual"
)

// ParseFrequency accepts the four pay frequencies case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencySemanal:
		return FrequencySemanal, nil
	case FrequencyCatorcenal:
		return FrequencyCatorcenal, nil
	case FrequencyQuincenal:
		return FrequencyQuincenal, nil
	case FrequencyMensual:
		return FrequencyMensual, nil
	}
	return "", ErrInvalidFrequency
}

// PeriodStatusOpen is the initial period state, open for incidence capture.
const PeriodStatusOpen = "EN_INCIDENCIA"

type Period struct {
	ID          string    `json:"id,omitempty"`
	CalendarID  string    `json:"calendarId,omitempty"`
	Number      int       `json:"number"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
}

type Calendar struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"companyId"`
	Name            string    `json:"name"`
	PayFrequency    Frequency `json:"payFrequency"`
	StartDate       time.Time `json:"startDate"`
	DaysBeforeClose int       `json:"daysBeforeClose"`
	PayNaturalDays  bool      `json:"payNaturalDays"`
	PeriodNumber    int       `json:"periodNumber"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

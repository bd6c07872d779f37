package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidFrequency = errors.New("unrecognized pay frequency")
	ErrNotFound         = errors.New("payroll calendar not found")
)

// periodCaps bounds how many periods one calendar year can hold per
// frequency.
var periodCaps = map[Frequency]int{
	FrequencySemanal:    52,
	FrequencyCatorcenal: 27,
	FrequencyQuincenal:  24,
	FrequencyMensual:    12,
}

func endOfMonth(t time.Time) time.Time {
	// day 0 of the next month
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// GeneratePeriods emits the pay periods for startDate's calendar year. It
// walks forward from startDate until the frequency cap is reached or the next
// period would start in the following year, whichever comes first.
//
// Quincenal halves are [1..15] and [16..end-of-month]; a mid-month start
// yields a truncated first period covering the remainder of its half.
// PaymentDate is always EndDate plus one day, with no business-day
// adjustment. The function is pure; persistence belongs to the caller.
func GeneratePeriods(startDate time.Time, frequency Frequency, startNumber int) ([]Period, error) {
	max, ok := periodCaps[frequency]
	if !ok {
		return nil, ErrInvalidFrequency
	}

	year := startDate.Year()
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)

	var periods []Period
	number := startNumber
	for len(periods) < max && start.Year() == year {
		var end time.Time
		switch frequency {
		case FrequencySemanal:
			end = start.AddDate(0, 0, 6)
		case FrequencyCatorcenal:
			end = start.AddDate(0, 0, 13)
		case FrequencyQuincenal:
			if start.Day() <= 15 {
				end = time.Date(start.Year(), start.Month(), 15, 0, 0, 0, 0, time.UTC)
			} else {
				end = endOfMonth(start)
			}
		case FrequencyMensual:
			end = endOfMonth(start)
		}

		periods = append(periods, Period{
			Number:      number,
			StartDate:   start,
			EndDate:     end,
			PaymentDate: end.AddDate(0, 0, 1),
			Status:      PeriodStatusOpen,
		})
		number++
		start = end.AddDate(0, 0, 1)
	}
	return periods, nil
}

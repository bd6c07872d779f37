package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFrequency(t *testing.T) {
	for _, raw := range []string{"semanal", "SEMANAL", " Quincenal ", "mensual", "CATORCENAL"} {
		_, err := ParseFrequency(raw)
		assert.NoError(t, err, raw)
	}
	_, err := ParseFrequency("bimestral")
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestGeneratePeriodsUnknownFrequency(t *testing.T) {
	_, err := GeneratePeriods(date(2024, time.January, 1), Frequency("diario"), 1)
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestGeneratePeriodsMensualFullYear(t *testing.T) {
	periods, err := GeneratePeriods(date(2024, time.January, 1), FrequencyMensual, 1)
	require.NoError(t, err)
	require.Len(t, periods, 12)

	first := periods[0]
	assert.Equal(t, date(2024, time.January, 1), first.StartDate)
	assert.Equal(t, date(2024, time.January, 31), first.EndDate)
	assert.Equal(t, date(2024, time.February, 1), first.PaymentDate)
	assert.Equal(t, PeriodStatusOpen, first.Status)

	last := periods[11]
	assert.Equal(t, date(2024, time.December, 1), last.StartDate)
	assert.Equal(t, date(2024, time.December, 31), last.EndDate)
}

func TestGeneratePeriodsQuincenalMidMonthStart(t *testing.T) {
	periods, err := GeneratePeriods(date(2024, time.January, 10), FrequencyQuincenal, 1)
	require.NoError(t, err)
	require.Greater(t, len(periods), 2)

	// mid-month start truncates the first half-month period
	assert.Equal(t, date(2024, time.January, 10), periods[0].StartDate)
	assert.Equal(t, date(2024, time.January, 15), periods[0].EndDate)

	assert.Equal(t, date(2024, time.January, 16), periods[1].StartDate)
	assert.Equal(t, date(2024, time.January, 31), periods[1].EndDate)

	assert.Equal(t, date(2024, time.February, 1), periods[2].StartDate)
	assert.Equal(t, date(2024, time.February, 15), periods[2].EndDate)
}

func TestGeneratePeriodsQuincenalFullYearHitsCap(t *testing.T) {
	periods, err := GeneratePeriods(date(2024, time.January, 1), FrequencyQuincenal, 1)
	require.NoError(t, err)
	assert.Len(t, periods, 24)
	assert.Equal(t, date(2024, time.December, 31), periods[23].EndDate)
}

func TestGeneratePeriodsSemanalFullYearHitsCap(t *testing.T) {
	periods, err := GeneratePeriods(date(2024, time.January, 1), FrequencySemanal, 1)
	require.NoError(t, err)
	assert.Len(t, periods, 52)
	for _, p := range periods {
		assert.Equal(t, p.StartDate.AddDate(0, 0, 6), p.EndDate)
	}
}

func TestGeneratePeriodsStopAtYearBoundary(t *testing.T) {
	periods, err := GeneratePeriods(date(2024, time.December, 1), FrequencySemanal, 1)
	require.NoError(t, err)
	// starts Dec 1, 8, 15, 22, 29; the next window would begin in January
	assert.Len(t, periods, 5)
	assert.Equal(t, date(2024, time.December, 29), periods[4].StartDate)
}

func TestGeneratePeriodsContiguityAndNumbering(t *testing.T) {
	for _, freq := range []Frequency{FrequencySemanal, FrequencyCatorcenal, FrequencyQuincenal, FrequencyMensual} {
		periods, err := GeneratePeriods(date(2024, time.January, 1), freq, 5)
		require.NoError(t, err, freq)
		require.NotEmpty(t, periods, freq)

		for i, p := range periods {
			assert.Equal(t, 5+i, p.Number, freq)
			assert.Equal(t, p.EndDate.AddDate(0, 0, 1), p.PaymentDate, freq)
			assert.False(t, p.EndDate.Before(p.StartDate), freq)
			if i > 0 {
				prev := periods[i-1]
				assert.Equal(t, prev.EndDate.AddDate(0, 0, 1), p.StartDate, freq)
			}
		}
	}
}

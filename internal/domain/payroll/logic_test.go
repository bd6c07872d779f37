package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionGuards(t *testing.T) {
	cases := []struct {
		status     string
		canSubmit  bool
		canApprove bool
		canReject  bool
	}{
		{StatusDraft, true, false, false},
		{StatusPendingAuthorization, false, true, true},
		{StatusAuthorized, false, false, false},
		{"UNKNOWN", false, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.canSubmit, CanSubmit(tc.status), "submit %s", tc.status)
		assert.Equal(t, tc.canApprove, CanApprove(tc.status), "approve %s", tc.status)
		assert.Equal(t, tc.canReject, CanReject(tc.status), "reject %s", tc.status)
	}
}

func TestRejectReturnsToDraftNotTerminal(t *testing.T) {
	// rejection targets DRAFT, so a rejected run can be submitted again
	assert.True(t, CanSubmit(StatusDraft))
	assert.False(t, CanApprove(StatusDraft))
}

func TestRegisterPDF(t *testing.T) {
	p := &Payroll{PeriodLabel: "Quincena 5 2024", Status: StatusAuthorized}
	items := []Item{{EmployeeID: "e1", EmployeeName: "José Pérez"}}

	out, err := RegisterPDF("Acme SA de CV", p, items)
	assert.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

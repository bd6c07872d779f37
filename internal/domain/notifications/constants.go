package notifications

const (
	TypeIncidenceApproved  = "incidence_approved"
	TypeIncidenceRejected  = "incidence_rejected"
	TypeIncidenceSubmitted = "incidence_submitted"
	TypePayrollAuthorized  = "payroll_authorized"
	TypePayrollReturned    = "payroll_returned"
	TypeInvitationSent     = "invitation_sent"
)

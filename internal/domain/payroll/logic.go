package payroll

// Transition guards for the approval flow. Submission moves a draft into
// review; the client then either authorizes it or returns it for rework.
// There is no terminal rejected state.

func CanSubmit(status string) bool {
	return status == StatusDraft
}

func CanApprove(status string) bool {
	return status == StatusPendingAuthorization
}

func CanReject(status string) bool {
	return status == StatusPendingAuthorization
}

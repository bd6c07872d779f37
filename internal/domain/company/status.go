package company

import "regexp"

// setupOrder defines the onboarding wizard. AdvanceStatus only ever moves
// forward through it.
var setupOrder = []string{StatusInSetup, StatusConfigured, StatusActive}

func statusIndex(status string) int {
	for i, s := range setupOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// NextStatus returns the status following current in the onboarding wizard.
// ok is false when current is unknown or already final.
func NextStatus(current string) (string, bool) {
	idx := statusIndex(current)
	if idx < 0 || idx == len(setupOrder)-1 {
		return "", false
	}
	return setupOrder[idx+1], true
}

var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z\d]{3}$`)

func ValidRFC(rfc string) bool {
	return rfcPattern.MatchString(rfc)
}

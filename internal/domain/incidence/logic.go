package incidence

import (
	"errors"

	"nomina/internal/domain/auth"
)

var (
	ErrInvalidState  = errors.New("incidence is not pending")
	ErrReasonMissing = errors.New("rejection reason is required")
	ErrNotFound      = errors.New("incidence not found")
)

// InitialStatus maps the creator's role to the incidence's starting status.
// Clients self-authorize; everyone else waits for client review.
func InitialStatus(role string) string {
	if role == auth.RoleClient {
		return StatusApproved
	}
	return StatusPending
}

// RejectDescription folds the rejection reason into the description, since
// the record has no dedicated reason column.
func RejectDescription(description, reason string) string {
	suffix := "RECHAZADA: " + reason
	if description == "" {
		return suffix
	}
	return description + " | " + suffix
}

package scheduling

import (
	"errors"
	"fmt"

	"mindwell/backend/internal/domain"
)

// ErrSlotUnavailable means the requested slot is not in the provider's open
// set: outside availability, blocked, or already taken. Callers should
// re-resolve and offer alternatives.
var ErrSlotUnavailable = errors.New("slot unavailable")

// InvalidTransitionError reports a lifecycle operation attempted from a
// disallowed state. Not retryable; the caller's view of the appointment is
// stale.
type InvalidTransitionError struct {
	Op     string
	Status domain.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an appointment in status %q", e.Op, e.Status)
}

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

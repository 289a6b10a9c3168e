// File: services/appointment/errors.go
package appointment

import (
	"fmt"

	"docnet/models"
)

// SlotUnavailableError means the chosen slot was taken between the patient's
// view of the calendar and the booking attempt.
type SlotUnavailableError struct{}

func (e *SlotUnavailableError) Error() string {
	return "the selected time slot is no longer available"
}

// InvalidStateTransitionError reports an appointment transition the state
// machine does not allow, including anything out of a terminal state.
type InvalidStateTransitionError struct {
	From  models.AppointmentStatus
	Event string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an appointment in state %s", e.Event, e.From)
}

// UnauthorizedError means the caller is neither the owning doctor nor the
// owning patient for the attempted action.
type UnauthorizedError struct {
	Action string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("not allowed to %s this appointment", e.Action)
}

// ReasonRequiredError marks a patient-initiated cancellation without the
// mandatory reason.
type ReasonRequiredError struct{}

func (e *ReasonRequiredError) Error() string {
	return "a cancellation reason is required"
}

// File: services/appointment/statemachine.go
package appointment

import "docnet/models"

// Events that drive the appointment lifecycle.
const (
	EventApprove  = "approve"
	EventReject   = "reject"
	EventCancel   = "cancel"
	EventComplete = "complete"
)

// transitions is the complete lifecycle table. Anything not listed is
// invalid, which covers terminal states implicitly: CANCELLED and COMPLETED
// have no outgoing edges.
var transitions = map[models.AppointmentStatus]map[string]models.AppointmentStatus{
	models.StatusPendingApproval: {
		EventApprove: models.StatusScheduled,
		EventReject:  models.StatusCancelled,
		EventCancel:  models.StatusCancelled,
	},
	models.StatusScheduled: {
		EventCancel:   models.StatusCancelled,
		EventComplete: models.StatusCompleted,
	},
}

// nextStatus resolves the target state for an event, or an
// InvalidStateTransitionError when the edge does not exist.
func nextStatus(from models.AppointmentStatus, event string) (models.AppointmentStatus, error) {
	if to, ok := transitions[from][event]; ok {
		return to, nil
	}
	return "", &InvalidStateTransitionError{From: from, Event: event}
}

// releasesSlot reports whether an event hands the bound slot back to the
// open pool. Approval keeps the binding; completion leaves the slot in the
// past, still bound for history.
func releasesSlot(event string) bool {
	return event == EventReject || event == EventCancel
}

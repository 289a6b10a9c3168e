package models

// Slot is a concrete bookable interval on a doctor's calendar, derived from
// the weekly template. Available is false exactly when AppointmentID is set.
type Slot struct {
	ID            string     `bson:"id" json:"id"`
	DoctorID      string     `bson:"doctorId" json:"doctorId"`
	Date          string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime     MinuteTime `bson:"startTime" json:"startTime"`
	EndTime       MinuteTime `bson:"endTime" json:"endTime"`
	Available     bool       `bson:"available" json:"available"`
	AppointmentID string     `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
}

// Booked reports whether an appointment is bound to this slot.
func (s Slot) Booked() bool {
	return s.AppointmentID != ""
}

// SlotRef identifies a slot by position rather than ID, used in conflict
// reports where the slot may no longer match any generated candidate.
type SlotRef struct {
	SlotID    string     `json:"slotId"`
	Date      string     `json:"date"`
	StartTime MinuteTime `json:"startTime"`
}

// RegenerationReport summarizes one availability update: how many free slots
// were created and removed, plus booked slots the new schedule would no
// longer generate (kept in place, reported here instead).
type RegenerationReport struct {
	SlotsAdded   int       `json:"slotsAdded"`
	SlotsRemoved int       `json:"slotsRemoved"`
	Conflicts    []SlotRef `json:"conflicts,omitempty"`
}

// BulkDeleteResult reports a best-effort bulk slot delete: booked slots are
// skipped and echoed back, not treated as a failure of the whole request.
type BulkDeleteResult struct {
	Deleted    int      `json:"deleted"`
	SkippedIDs []string `json:"skippedIds,omitempty"`
}

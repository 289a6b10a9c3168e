package models

import "time"

type AppointmentType string

const (
	TypeInPerson AppointmentType = "IN_PERSON"
	TypeVideo    AppointmentType = "VIDEO"
	TypePhone    AppointmentType = "PHONE"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeInPerson, TypeVideo, TypePhone:
		return true
	}
	return false
}

// AppointmentStatus is the lifecycle state of a booking request.
//
//	PENDING_APPROVAL → SCHEDULED  (doctor approves)
//	PENDING_APPROVAL → CANCELLED  (doctor rejects, or either party cancels)
//	SCHEDULED        → CANCELLED  (either party cancels)
//	SCHEDULED        → COMPLETED  (visit done)
//
// CANCELLED and COMPLETED are terminal.
type AppointmentStatus string

const (
	StatusPendingApproval AppointmentStatus = "PENDING_APPROVAL"
	StatusScheduled       AppointmentStatus = "SCHEDULED"
	StatusCancelled       AppointmentStatus = "CANCELLED"
	StatusCompleted       AppointmentStatus = "COMPLETED"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusScheduled, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment is a patient's booking record, bound 1:1 to a slot. Records
// are never hard-deleted; cancelled and rejected ones are kept for history.
type Appointment struct {
	ID              string            `bson:"id" json:"id"`
	PatientID       string            `bson:"patientId" json:"patientId"`
	DoctorID        string            `bson:"doctorId" json:"doctorId"`
	SlotID          string            `bson:"slotId" json:"slotId"`
	AppointmentDate string            `bson:"appointmentDate" json:"appointmentDate"` // "YYYY-MM-DD"
	StartTime       MinuteTime        `bson:"startTime" json:"startTime"`
	EndTime         MinuteTime        `bson:"endTime" json:"endTime"`
	Type            AppointmentType   `bson:"type" json:"type"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	ReasonForVisit  string            `bson:"reasonForVisit" json:"reasonForVisit"`
	Symptoms        string            `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	RejectionReason string            `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	VideoCallLink   string            `bson:"videoCallLink,omitempty" json:"videoCallLink,omitempty"`
	ReminderSentAt  *time.Time        `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// CreateAppointmentRequest is the booking payload sent by patients. The slot
// is addressed by doctor + date + start time, mirroring how the portal's
// booking wizard selects it.
type CreateAppointmentRequest struct {
	DoctorID        string          `json:"doctorId" binding:"required"`
	AppointmentDate string          `json:"appointmentDate" binding:"required"`
	StartTime       MinuteTime      `json:"startTime"`
	Type            AppointmentType `json:"type" binding:"required"`
	ReasonForVisit  string          `json:"reasonForVisit" binding:"required"`
	Symptoms        string          `json:"symptoms"`
}

// File: services/notification/interface.go
package notification

import (
	"context"

	"docnet/models"
	"docnet/utils"

	"go.uber.org/zap"
)

// NotificationService is the boundary to the portal's notification system,
// which lives outside this core. The scheduling flows call it on every
// lifecycle event; delivery mechanics (push, email, in-app) are the
// collaborator's business.
type NotificationService interface {
	AppointmentBooked(ctx context.Context, appt *models.Appointment) error
	AppointmentApproved(ctx context.Context, appt *models.Appointment) error
	AppointmentRejected(ctx context.Context, appt *models.Appointment) error
	AppointmentCancelled(ctx context.Context, appt *models.Appointment) error
	AppointmentReminder(ctx context.Context, appt *models.Appointment) error
}

// LogNotificationService is the default implementation: it records the
// event and nothing more. Deployments wire a real sender in its place.
type LogNotificationService struct{}

func (s *LogNotificationService) AppointmentBooked(ctx context.Context, appt *models.Appointment) error {
	return s.log("booked", appt)
}

func (s *LogNotificationService) AppointmentApproved(ctx context.Context, appt *models.Appointment) error {
	return s.log("approved", appt)
}

func (s *LogNotificationService) AppointmentRejected(ctx context.Context, appt *models.Appointment) error {
	return s.log("rejected", appt)
}

func (s *LogNotificationService) AppointmentCancelled(ctx context.Context, appt *models.Appointment) error {
	return s.log("cancelled", appt)
}

func (s *LogNotificationService) AppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	return s.log("reminder", appt)
}

func (s *LogNotificationService) log(event string, appt *models.Appointment) error {
	utils.GetLogger().Info("notification",
		zap.String("event", event),
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("patientId", appt.PatientID))
	return nil
}

// File: services/tasks/reminder.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docnet/models"

	"github.com/hibiken/asynq"
)

// Task type names shared between enqueuers and the worker.
const (
	TypeSendReminder    = "reminder:send"
	TypeReminderSweep   = "reminder:sweep"
	TypeExtendSlots     = "slots:extend"
	TypeCompleteElapsed = "appointments:sweep"
)

// ReminderPayload carries everything the worker needs to deliver one
// appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	DoctorID      string `json:"doctorId"`
	PatientID     string `json:"patientId"`
	Date          string `json:"date"`
}

// NewReminderTask builds a reminder task scheduled for fireAt.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderScheduler queues an appointment reminder for later delivery.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error
}

// AsynqReminderScheduler enqueues reminders on the shared Redis queue,
// firing at 09:00 the day before the visit.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func (s *AsynqReminderScheduler) ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	date, err := time.ParseInLocation("2006-01-02", appt.AppointmentDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid appointment date %q: %w", appt.AppointmentDate, err)
	}
	fireAt := date.AddDate(0, 0, -1).Add(9 * time.Hour)
	if fireAt.Before(time.Now()) {
		// Same-day or next-morning bookings get no advance reminder.
		return nil
	}

	task, opts, err := NewReminderTask(ReminderPayload{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Date:          appt.AppointmentDate,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

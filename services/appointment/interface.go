// File: services/appointment/interface.go
package appointment

import (
	"context"

	appointmentRepo "docnet/database/repository/appointment"
	doctorRepo "docnet/database/repository/doctor"
	slotRepo "docnet/database/repository/slot"
	"docnet/models"
	"docnet/services/notification"
	"docnet/services/tasks"

	"github.com/go-redis/redis/v8"
)

// AppointmentService governs the booking lifecycle. Every mutating method
// takes the caller's Principal; ownership is checked before state.
type AppointmentService interface {
	Book(ctx context.Context, principal models.Principal, req models.CreateAppointmentRequest) (*models.Appointment, error)
	Approve(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error)
	Reject(ctx context.Context, principal models.Principal, appointmentID, reason string) (*models.Appointment, error)
	Cancel(ctx context.Context, principal models.Principal, appointmentID, reason string) (*models.Appointment, error)
	Complete(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error)

	GetByID(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error)
	PatientAppointments(ctx context.Context, principal models.Principal, page, size int) (*models.Page, error)
	DoctorAppointments(ctx context.Context, principal models.Principal, status *models.AppointmentStatus, page, size int) (*models.Page, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo       appointmentRepo.AppointmentRepository
	SlotRepo   slotRepo.SlotRepository
	DoctorRepo doctorRepo.DoctorRepository
	Notifier   notification.NotificationService
	Reminders  tasks.ReminderScheduler
	Cache      *redis.Client
}

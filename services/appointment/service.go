// File: services/appointment/service.go
package appointment

import (
	"context"
	"errors"
	"fmt"

	doctorRepo "docnet/database/repository/doctor"
	slotRepo "docnet/database/repository/slot"
	"docnet/models"
	"docnet/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book creates a PENDING_APPROVAL appointment bound to the requested slot.
// The slot claim and the appointment insert commit together; a lost race on
// the slot surfaces as SlotUnavailableError with nothing persisted.
func (s *DefaultAppointmentService) Book(ctx context.Context, principal models.Principal, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if !principal.IsPatient() {
		return nil, &UnauthorizedError{Action: "book"}
	}
	if !req.Type.IsValid() {
		return nil, &models.ValidationError{Field: "type", Message: "unknown appointment type"}
	}

	doctor, err := s.DoctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.AcceptingPatients {
		return nil, &models.ValidationError{Field: "doctorId", Message: "doctor is not accepting patients"}
	}

	slot, err := s.SlotRepo.GetByDoctorDateStart(ctx, req.DoctorID, req.AppointmentDate, req.StartTime)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, &SlotUnavailableError{}
		}
		return nil, err
	}
	if !slot.Available {
		return nil, &SlotUnavailableError{}
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		PatientID:       principal.UserID,
		DoctorID:        req.DoctorID,
		SlotID:          slot.ID,
		AppointmentDate: slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Type:            req.Type,
		Status:          models.StatusPendingApproval,
		ReasonForVisit:  req.ReasonForVisit,
		Symptoms:        req.Symptoms,
	}
	if req.Type == models.TypeVideo {
		appt.VideoCallLink = "https://meet.docnet.health/" + uuid.New().String()
	}

	if err := s.Repo.CreateWithSlotBind(ctx, appt); err != nil {
		if errors.Is(err, slotRepo.ErrSlotUnavailable) {
			return nil, &SlotUnavailableError{}
		}
		return nil, fmt.Errorf("booking failed: %w", err)
	}

	s.invalidateSlotCache(ctx, appt.DoctorID, appt.AppointmentDate)
	s.notify(ctx, func(c context.Context) error { return s.Notifier.AppointmentBooked(c, appt) })

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.AppointmentDate))
	return appt, nil
}

// Approve moves a pending request to SCHEDULED. Doctor-only; the slot stays
// bound. A reminder for the day before the visit is queued on approval.
func (s *DefaultAppointmentService) Approve(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error) {
	appt, err := s.transition(ctx, principal, appointmentID, EventApprove, "")
	if err != nil {
		return nil, err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleAppointmentReminder(ctx, appt); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	s.notify(ctx, func(c context.Context) error { return s.Notifier.AppointmentApproved(c, appt) })
	return appt, nil
}

// Reject cancels a pending request, doctor-only, reason optional. The slot
// reopens.
func (s *DefaultAppointmentService) Reject(ctx context.Context, principal models.Principal, appointmentID, reason string) (*models.Appointment, error) {
	appt, err := s.transition(ctx, principal, appointmentID, EventReject, reason)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, func(c context.Context) error { return s.Notifier.AppointmentRejected(c, appt) })
	return appt, nil
}

// Cancel is available to both parties while the appointment is pending or
// scheduled. Patients must give a reason; doctors may omit it. The slot
// reopens.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, principal models.Principal, appointmentID, reason string) (*models.Appointment, error) {
	if principal.IsPatient() && reason == "" {
		return nil, &ReasonRequiredError{}
	}
	appt, err := s.transition(ctx, principal, appointmentID, EventCancel, reason)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, func(c context.Context) error { return s.Notifier.AppointmentCancelled(c, appt) })
	return appt, nil
}

// Complete marks a scheduled visit as done. Doctor-only.
func (s *DefaultAppointmentService) Complete(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error) {
	return s.transition(ctx, principal, appointmentID, EventComplete, "")
}

// transition is the single path every lifecycle event goes through:
// load, check ownership, check the state table, apply side effects, save.
func (s *DefaultAppointmentService) transition(ctx context.Context, principal models.Principal, appointmentID, event, reason string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Ownership first: an unauthorized caller learns nothing about the
	// appointment's state.
	if err := s.authorize(ctx, principal, appt, event); err != nil {
		return nil, err
	}

	to, err := nextStatus(appt.Status, event)
	if err != nil {
		return nil, err
	}

	appt.Status = to
	if reason != "" && (event == EventReject || event == EventCancel) {
		appt.RejectionReason = reason
	}
	if err := s.Repo.Save(ctx, appt); err != nil {
		return nil, err
	}

	if releasesSlot(event) && appt.SlotID != "" {
		if err := s.SlotRepo.Release(ctx, appt.SlotID); err != nil {
			return nil, fmt.Errorf("appointment updated but slot release failed: %w", err)
		}
		s.invalidateSlotCache(ctx, appt.DoctorID, appt.AppointmentDate)
	}

	utils.GetLogger().Info("appointment transition",
		zap.String("appointmentId", appt.ID),
		zap.String("event", event),
		zap.String("status", string(appt.Status)))
	return appt, nil
}

// authorize enforces who may fire which event: approve/reject/complete are
// for the owning doctor, cancel for the owning doctor or owning patient.
func (s *DefaultAppointmentService) authorize(ctx context.Context, principal models.Principal, appt *models.Appointment, event string) error {
	switch event {
	case EventApprove, EventReject, EventComplete:
		return s.requireOwningDoctor(ctx, principal, appt, event)
	case EventCancel:
		if principal.IsPatient() {
			if appt.PatientID != principal.UserID {
				return &UnauthorizedError{Action: event}
			}
			return nil
		}
		return s.requireOwningDoctor(ctx, principal, appt, event)
	default:
		return &UnauthorizedError{Action: event}
	}
}

func (s *DefaultAppointmentService) requireOwningDoctor(ctx context.Context, principal models.Principal, appt *models.Appointment, event string) error {
	if !principal.IsDoctor() {
		return &UnauthorizedError{Action: event}
	}
	doc, err := s.DoctorRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrNotFound) {
			return &UnauthorizedError{Action: event}
		}
		return err
	}
	if doc.ID != appt.DoctorID {
		return &UnauthorizedError{Action: event}
	}
	return nil
}

// notify fires a notification without letting collaborator failures affect
// the request outcome.
func (s *DefaultAppointmentService) notify(ctx context.Context, fn func(context.Context) error) {
	if s.Notifier == nil {
		return
	}
	if err := fn(ctx); err != nil {
		utils.GetLogger().Warn("notification delivery failed", zap.Error(err))
	}
}

func (s *DefaultAppointmentService) invalidateSlotCache(ctx context.Context, doctorID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.SlotCachePrefix+doctorID+":"+date).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}

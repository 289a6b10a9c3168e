// File: services/appointment/reads.go
package appointment

import (
	"context"

	"docnet/models"
)

func (s *DefaultAppointmentService) GetByID(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Only the two parties may read the record.
	if principal.IsPatient() {
		if appt.PatientID != principal.UserID {
			return nil, &UnauthorizedError{Action: "view"}
		}
		return appt, nil
	}
	if err := s.requireOwningDoctor(ctx, principal, appt, "view"); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) PatientAppointments(ctx context.Context, principal models.Principal, page, size int) (*models.Page, error) {
	if !principal.IsPatient() {
		return nil, &UnauthorizedError{Action: "list"}
	}
	appts, total, err := s.Repo.FindByPatient(ctx, principal.UserID, page, size)
	if err != nil {
		return nil, err
	}
	p := models.NewPage(appts, page, size, total)
	return &p, nil
}

func (s *DefaultAppointmentService) DoctorAppointments(ctx context.Context, principal models.Principal, status *models.AppointmentStatus, page, size int) (*models.Page, error) {
	if !principal.IsDoctor() {
		return nil, &UnauthorizedError{Action: "list"}
	}
	doc, err := s.DoctorRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	var (
		appts []models.Appointment
		total int64
	)
	if status != nil {
		appts, total, err = s.Repo.FindByDoctorAndStatus(ctx, doc.ID, *status, page, size)
	} else {
		appts, total, err = s.Repo.FindByDoctor(ctx, doc.ID, page, size)
	}
	if err != nil {
		return nil, err
	}
	p := models.NewPage(appts, page, size, total)
	return &p, nil
}

// File: services/doctor/service.go
package doctor

import (
	"context"

	"docnet/models"
)

func (s *DefaultDoctorService) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.Repo.GetByID(ctx, doctorID)
}

func (s *DefaultDoctorService) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

// UpdateProfile applies the editable fields to the caller's own profile.
// An included availability template is validated and saved, nothing more:
// regeneration stays a separate, explicit step.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateDoctorRequest) (*models.Doctor, error) {
	doc, err := s.Repo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.Specializations != nil {
		doc.Specializations = req.Specializations
	}
	if req.Qualification != nil {
		doc.Qualification = *req.Qualification
	}
	if req.ClinicName != nil {
		doc.ClinicName = *req.ClinicName
	}
	if req.City != nil {
		doc.City = *req.City
	}
	if req.ConsultationFee != nil {
		doc.ConsultationFee = *req.ConsultationFee
	}
	if req.AcceptingPatients != nil {
		doc.AcceptingPatients = *req.AcceptingPatients
	}

	if req.Availability != nil {
		av := *req.Availability
		av.Normalize()
		if err := av.Validate(); err != nil {
			return nil, err
		}
		doc.Availability = &av
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DefaultDoctorService) Search(ctx context.Context, specialization, city string, page, size int) (*models.Page, error) {
	doctors, total, err := s.Repo.Search(ctx, specialization, city, page, size)
	if err != nil {
		return nil, err
	}
	p := models.NewPage(doctors, page, size, total)
	return &p, nil
}

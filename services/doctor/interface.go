// File: services/doctor/interface.go
package doctor

import (
	"context"

	doctorRepo "docnet/database/repository/doctor"
	"docnet/models"
)

// DoctorService covers the profile reads and the profile save the portal
// performs before triggering slot regeneration. Saving availability here
// validates it but deliberately does not regenerate; the portal calls the
// generate-slots endpoint as the second half of the pair.
type DoctorService interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateDoctorRequest) (*models.Doctor, error)
	Search(ctx context.Context, specialization, city string, page, size int) (*models.Page, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

package doctor

import (
	"context"
	"errors"
	"testing"

	doctorRepo "docnet/database/repository/doctor"
	"docnet/models"
)

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
	updated *models.Doctor
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, doctorRepo.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, doctorRepo.ErrNotFound
}

func (f *fakeDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	f.updated = doctor
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) SetAvailability(ctx context.Context, doctorID string, availability *models.Availability) error {
	return nil
}

func (f *fakeDoctorRepo) Search(ctx context.Context, specialization, city string, page, size int) ([]models.Doctor, int64, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDoctorRepo) ListWithAvailability(ctx context.Context) ([]models.Doctor, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileAppliesOnlyGivenFields(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", UserID: "user-1", Name: "Dr. Asha Rao", City: "Pune"},
	}}
	svc := &DefaultDoctorService{Repo: repo}
	principal := models.Principal{UserID: "user-1", Role: models.RoleDoctor}

	doc, err := svc.UpdateProfile(context.Background(), principal, models.UpdateDoctorRequest{
		ClinicName: strPtr("Rao Clinic"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if doc.ClinicName != "Rao Clinic" {
		t.Fatalf("clinic name not applied: %q", doc.ClinicName)
	}
	if doc.Name != "Dr. Asha Rao" || doc.City != "Pune" {
		t.Fatal("omitted fields must stay untouched")
	}
	if repo.updated == nil {
		t.Fatal("profile was not persisted")
	}
}

func TestUpdateProfileValidatesAvailability(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", UserID: "user-1"},
	}}
	svc := &DefaultDoctorService{Repo: repo}
	principal := models.Principal{UserID: "user-1", Role: models.RoleDoctor}

	// A two-day template fails the seven-day invariant.
	bad := &models.Availability{
		SlotDuration: 30,
		WeekSchedule: []models.DaySchedule{
			{DayOfWeek: models.Monday, Available: false},
			{DayOfWeek: models.Tuesday, Available: false},
		},
	}
	_, err := svc.UpdateProfile(context.Background(), principal, models.UpdateDoctorRequest{Availability: bad})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("invalid availability must not be persisted")
	}
}

func TestUpdateProfileNormalizesAvailability(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", UserID: "user-1"},
	}}
	svc := &DefaultDoctorService{Repo: repo}
	principal := models.Principal{UserID: "user-1", Role: models.RoleDoctor}

	av := &models.Availability{WeekSchedule: make([]models.DaySchedule, 0, 7)}
	for _, d := range models.WeekDays {
		av.WeekSchedule = append(av.WeekSchedule, models.DaySchedule{DayOfWeek: d, Available: d == models.Monday})
	}

	doc, err := svc.UpdateProfile(context.Background(), principal, models.UpdateDoctorRequest{Availability: av})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if doc.Availability.SlotDuration != models.DefaultSlotDuration {
		t.Fatalf("expected default slot duration, got %d", doc.Availability.SlotDuration)
	}
	monday := doc.Availability.DayFor(models.Monday)
	if monday.StartTime == nil {
		t.Fatal("an enabled day without hours must get the business-hours default")
	}
}

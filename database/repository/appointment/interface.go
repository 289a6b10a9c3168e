// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"docnet/database"
	"docnet/models"
	"docnet/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound means no appointment matched the given identifier.
var ErrNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	// CreateWithSlotBind persists the appointment and claims its slot in one
	// transaction. If the guarded slot update matches nothing the whole
	// transaction aborts with slotRepo.ErrSlotUnavailable and nothing is
	// persisted.
	CreateWithSlotBind(ctx context.Context, appt *models.Appointment) error

	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Save(ctx context.Context, appt *models.Appointment) error

	FindByPatient(ctx context.Context, patientID string, page, size int) ([]models.Appointment, int64, error)
	FindByDoctor(ctx context.Context, doctorID string, page, size int) ([]models.Appointment, int64, error)
	FindByDoctorAndStatus(ctx context.Context, doctorID string, status models.AppointmentStatus, page, size int) ([]models.Appointment, int64, error)
	FindByDateAndStatus(ctx context.Context, date string, status models.AppointmentStatus) ([]models.Appointment, error)
	FindScheduledBefore(ctx context.Context, date string) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll     *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
// It holds a handle on the slot collection as well, for the booking
// transaction that spans both.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	repo := &mongoAppointmentRepo{
		coll:     db.Collection("appointments"),
		slotColl: db.Collection("time_slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure appointment indexes", zap.Error(err))
	}
	return repo
}

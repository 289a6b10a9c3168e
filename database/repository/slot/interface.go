// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"docnet/database"
	"docnet/models"
	"docnet/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sentinel errors the service layer maps onto API error kinds.
var (
	// ErrNotFound means no slot matched the given identifier.
	ErrNotFound = errors.New("slot not found")
	// ErrSlotBooked means the slot has an appointment bound and cannot be deleted.
	ErrSlotBooked = errors.New("slot has a booked appointment")
	// ErrSlotUnavailable means the atomic bind lost the race: the slot was
	// already taken by the time the update ran.
	ErrSlotUnavailable = errors.New("slot is no longer available")
)

type SlotRepository interface {
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Slot, error)
	GetByDoctorDateStart(ctx context.Context, doctorID, date string, start models.MinuteTime) (*models.Slot, error)

	// DeleteFree removes a slot only while no appointment is bound to it.
	// Returns ErrSlotBooked when the slot exists but is booked, ErrNotFound
	// when it does not exist.
	DeleteFree(ctx context.Context, slotID string) error
	// DeleteFreeByIDs removes every free slot in ids within one doctor's
	// calendar and returns the IDs it actually deleted.
	DeleteFreeByIDs(ctx context.Context, doctorID string, ids []string) ([]string, error)

	// BindAppointment atomically claims an open slot for an appointment.
	// The check-and-set runs inside the store; two concurrent binds on the
	// same slot cannot both succeed. Returns ErrSlotUnavailable on a lost
	// race and ErrNotFound when the slot does not exist.
	BindAppointment(ctx context.Context, slotID, appointmentID string) error
	// Release clears the appointment binding and reopens the slot. Idempotent.
	Release(ctx context.Context, slotID string) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	repo := &mongoSlotRepo{
		coll: database.DB().Collection("time_slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure slot indexes", zap.Error(err))
	}
	return repo
}

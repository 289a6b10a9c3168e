// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"errors"

	"docnet/database"
	"docnet/models"
	"docnet/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound means no doctor matched the given identifier.
var ErrNotFound = errors.New("doctor not found")

type DoctorRepository interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	SetAvailability(ctx context.Context, doctorID string, availability *models.Availability) error
	Search(ctx context.Context, specialization, city string, page, size int) ([]models.Doctor, int64, error)
	ListWithAvailability(ctx context.Context) ([]models.Doctor, error)
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	repo := &mongoDoctorRepo{
		coll: database.DB().Collection("doctors"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure doctor indexes", zap.Error(err))
	}
	return repo
}

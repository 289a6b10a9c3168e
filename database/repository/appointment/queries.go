// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docnet/models"
	"docnet/utils"
)

func (r *mongoAppointmentRepo) FindByPatient(ctx context.Context, patientID string, page, size int) ([]models.Appointment, int64, error) {
	return r.findPage(ctx, bson.M{"patientId": patientID}, page, size)
}

func (r *mongoAppointmentRepo) FindByDoctor(ctx context.Context, doctorID string, page, size int) ([]models.Appointment, int64, error) {
	return r.findPage(ctx, bson.M{"doctorId": doctorID}, page, size)
}

func (r *mongoAppointmentRepo) FindByDoctorAndStatus(ctx context.Context, doctorID string, status models.AppointmentStatus, page, size int) ([]models.Appointment, int64, error) {
	return r.findPage(ctx, bson.M{"doctorId": doctorID, "status": status}, page, size)
}

// findPage runs the shared paginated query, newest appointment date first.
func (r *mongoAppointmentRepo) findPage(ctx context.Context, filter bson.M, page, size int) ([]models.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "appointmentDate", Value: -1}, {Key: "startTime", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, total, nil
}

func (r *mongoAppointmentRepo) FindByDateAndStatus(ctx context.Context, date string, status models.AppointmentStatus) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"appointmentDate": date, "status": status})
}

// FindScheduledBefore returns SCHEDULED appointments whose date is strictly
// before the given date, for the nightly completion sweep.
func (r *mongoAppointmentRepo) FindScheduledBefore(ctx context.Context, date string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{
		"appointmentDate": bson.M{"$lt": date},
		"status":          models.StatusScheduled,
	})
}

func (r *mongoAppointmentRepo) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

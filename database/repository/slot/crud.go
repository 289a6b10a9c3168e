// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docnet/models"
	"docnet/utils"
)

func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	docs := make([]interface{}, len(slots))
	ids := make([]string, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		ids[i] = slot.ID
		docs[i] = slot
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}
	return ids, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) GetByDoctorDateStart(ctx context.Context, doctorID, date string, start models.MinuteTime) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "date": date, "startTime": start}
	var slot models.Slot
	err := r.coll.FindOne(ctx, filter).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) DeleteFree(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	// The appointmentId guard keeps booked slots untouchable even if the
	// caller's view of the slot was stale.
	res, err := r.coll.DeleteOne(ctx, bson.M{
		"id":            slotID,
		"appointmentId": bson.M{"$in": bson.A{nil, ""}},
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if res.DeletedCount == 0 {
		// Distinguish "booked" from "gone".
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": slotID})
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}
		if count > 0 {
			return ErrSlotBooked
		}
		return ErrNotFound
	}
	return nil
}

func (r *mongoSlotRepo) DeleteFreeByIDs(ctx context.Context, doctorID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{
		"id":            bson.M{"$in": ids},
		"doctorId":      doctorID,
		"appointmentId": bson.M{"$in": bson.A{nil, ""}},
	}

	// Fetch the IDs that will go so the caller can report the skipped rest.
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deletable slots: %w", err)
	}
	var deletable []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &deletable); err != nil {
		return nil, fmt.Errorf("error decoding deletable slots: %w", err)
	}
	if len(deletable) == 0 {
		return nil, nil
	}

	deleted := make([]string, len(deletable))
	for i, d := range deletable {
		deleted[i] = d.ID
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{
		"id":            bson.M{"$in": deleted},
		"appointmentId": bson.M{"$in": bson.A{nil, ""}},
	}); err != nil {
		return nil, fmt.Errorf("failed to bulk delete slots: %w", err)
	}
	return deleted, nil
}

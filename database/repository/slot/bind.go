// File: database/repository/slot/bind.go
package slotRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"docnet/utils"
)

// BindAppointment claims the slot with a single guarded update: the filter
// requires available == true, so of two concurrent binds only one can match.
func (r *mongoSlotRepo) BindAppointment(ctx context.Context, slotID, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{"id": slotID, "available": true}
	update := bson.M{"$set": bson.M{
		"available":     false,
		"appointmentId": appointmentID,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to bind appointment to slot: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": slotID})
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrSlotUnavailable
	}
	return nil
}

// Release reopens the slot. Releasing an already-open slot is a no-op.
func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"available": true},
		"$unset": bson.M{"appointmentId": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": slotID}, update); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}

// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	slotRepo "docnet/database/repository/slot"
	"docnet/models"
)

func (r *mongoAppointmentRepo) CreateWithSlotBind(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Guarded claim first: only an open slot matches. Losing the race
		// aborts before the appointment document ever exists.
		res, err := r.slotColl.UpdateOne(sc,
			bson.M{"id": appt.SlotID, "available": true},
			bson.M{"$set": bson.M{"available": false, "appointmentId": appt.ID}},
		)
		if err != nil {
			return fmt.Errorf("slot bind failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return slotRepo.ErrSlotUnavailable
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

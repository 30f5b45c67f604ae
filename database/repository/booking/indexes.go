// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the clinic_bookings
// collection. The compound unique index on (sessionDate, slot) is the
// source of truth for the no-double-booking invariant: concurrent inserts
// for the same pair resolve to exactly one winner inside the store.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound unique index enforcing one booking per (sessionDate, slot)
		{
			Keys:    bson.D{{Key: "sessionDate", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_session_date_slot"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

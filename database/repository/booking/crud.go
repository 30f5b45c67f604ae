// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"ciba/models"
)

// Insert persists a new booking. The write relies on the unique
// (sessionDate, slot) index: a duplicate key error means another booking
// won the slot and is reported as ErrSlotTaken.
func (r *mongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

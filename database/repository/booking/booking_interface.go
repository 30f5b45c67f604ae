package bookingRepo

import (
	"context"
	"errors"

	"ciba/models"
)

// ErrSlotTaken is returned by Insert when another booking already occupies
// the same (sessionDate, slot) pair. The classification comes from the
// store's unique index violation, never from a prior existence check.
var ErrSlotTaken = errors.New("booking slot already taken")

// BookingRepository defines persistence operations for clinic bookings.
type BookingRepository interface {
	EnsureIndexes() error
	Insert(ctx context.Context, booking *models.Booking) error
	SlotsByDate(ctx context.Context, date string) ([]string, error)
	CountByDates(ctx context.Context, dates []string) (map[string]int, error)
}

package clinic

import (
	"context"

	"ciba/models"
)

// ClinicBookingService computes slot availability and allocates clinic
// session bookings.
type ClinicBookingService interface {
	// GetBookedSlots returns the slot strings already booked for a date.
	GetBookedSlots(ctx context.Context, date string) ([]string, error)
	// GetDatesAvailability reports per-date booked counts against the fixed
	// slot capacity. An empty input yields an empty map.
	GetDatesAvailability(ctx context.Context, dates []string) (map[string]models.DateAvailability, error)
	// CreateBooking validates the submission and inserts it behind the
	// store's (sessionDate, slot) uniqueness constraint.
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	// TotalSlots is the fixed per-day slot capacity.
	TotalSlots() int
}

package clinic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "ciba/database/repository/booking"
	"ciba/metrics"
	"ciba/models"
)

// availabilityCacheTTL bounds staleness of the per-date count cache; the
// date key is dropped on every successful insert anyway.
const availabilityCacheTTL = 30 * time.Second

// NotificationDispatcher hands a confirmed booking to the background
// notification pipeline. Dispatch failures never affect the booking.
type NotificationDispatcher interface {
	EnqueueBookingConfirmation(ctx context.Context, booking *models.Booking) error
}

// NewsletterSubscriber records the booking form's subscribe side-flag.
type NewsletterSubscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// DefaultClinicBookingService is the production ClinicBookingService.
// Dispatcher, Newsletter and Cache are optional; a nil value disables that
// concern.
type DefaultClinicBookingService struct {
	Repo       bookingRepo.BookingRepository
	Slots      []string
	Dispatcher NotificationDispatcher
	Newsletter NewsletterSubscriber
	Cache      *redis.Client
	Logger     *zap.Logger
}

func (s *DefaultClinicBookingService) slots() []string {
	if len(s.Slots) == 0 {
		return DefaultSlots
	}
	return s.Slots
}

// TotalSlots is the fixed per-day slot capacity.
func (s *DefaultClinicBookingService) TotalSlots() int {
	return len(s.slots())
}

// GetBookedSlots returns the slot strings already booked for a date.
func (s *DefaultClinicBookingService) GetBookedSlots(ctx context.Context, date string) ([]string, error) {
	normalized, err := NormalizeDate(date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	slots, err := s.Repo.SlotsByDate(ctx, normalized)
	if err != nil {
		return nil, NewUnavailableError(err)
	}
	return slots, nil
}

// GetDatesAvailability reports booked counts and the fully-booked flag for
// each candidate date in one round-trip, so the caller can render a
// calendar grid without querying per day.
func (s *DefaultClinicBookingService) GetDatesAvailability(ctx context.Context, dates []string) (map[string]models.DateAvailability, error) {
	result := make(map[string]models.DateAvailability, len(dates))
	if len(dates) == 0 {
		return result, nil
	}

	normalized := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, raw := range dates {
		d, err := NormalizeDate(raw)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		if !seen[d] {
			seen[d] = true
			normalized = append(normalized, d)
		}
	}

	counts := make(map[string]int, len(normalized))
	misses := make([]string, 0, len(normalized))
	for _, d := range normalized {
		if n, ok := s.cachedCount(ctx, d); ok {
			counts[d] = n
		} else {
			misses = append(misses, d)
		}
	}

	if len(misses) > 0 {
		fresh, err := s.Repo.CountByDates(ctx, misses)
		if err != nil {
			return nil, NewUnavailableError(err)
		}
		for _, d := range misses {
			counts[d] = fresh[d]
			s.cacheCount(ctx, d, fresh[d])
		}
	}

	capacity := s.TotalSlots()
	for _, d := range normalized {
		result[d] = models.DateAvailability{
			BookedCount:   counts[d],
			IsFullyBooked: counts[d] >= capacity,
		}
	}
	return result, nil
}

// CreateBooking validates the submission and attempts the constrained
// insert. The unique (sessionDate, slot) index is the sole arbiter of slot
// ownership; there is deliberately no read-check-write sequence here.
// Confirmation side effects are enqueued after the insert and never block
// or fail the booking.
func (s *DefaultClinicBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	if err := validateInput(input); err != nil {
		metrics.IncBookingRejected("validation")
		return nil, err
	}

	date, err := NormalizeDate(input.SessionDate)
	if err != nil {
		metrics.IncBookingRejected("validation")
		return nil, NewValidationError(err.Error())
	}
	if !s.knownSlot(input.Slot) {
		metrics.IncBookingRejected("validation")
		return nil, NewValidationError(fmt.Sprintf("unknown slot %q", input.Slot))
	}

	booking := &models.Booking{
		Name:                input.Name,
		Email:               input.Email,
		Phone:               input.Phone,
		SessionDate:         date,
		Slot:                input.Slot,
		Question1:           input.Question1,
		Question2:           input.Question2,
		Question3:           input.Question3,
		SubscribeNewsletter: input.SubscribeNewsletter,
	}

	if err := s.Repo.Insert(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			metrics.IncBookingRejected("conflict")
			return nil, NewSlotTakenError(date, input.Slot)
		}
		metrics.IncBookingRejected("store")
		return nil, NewUnavailableError(err)
	}

	metrics.IncBookingCreated()
	s.invalidateCount(ctx, date)

	if input.SubscribeNewsletter && s.Newsletter != nil {
		if err := s.Newsletter.Subscribe(ctx, input.Email); err != nil {
			s.Logger.Warn("failed to record newsletter subscription",
				zap.String("email", input.Email), zap.Error(err))
		}
	}

	if s.Dispatcher != nil {
		if err := s.Dispatcher.EnqueueBookingConfirmation(ctx, booking); err != nil {
			// The booking is already the durable fact; a lost notification is
			// logged and counted, not surfaced to the requester.
			s.Logger.Error("failed to enqueue booking confirmation",
				zap.String("bookingId", booking.ID), zap.Error(err))
			metrics.IncNotifyFailure("enqueue")
		}
	}

	return booking, nil
}

func validateInput(input models.BookingInput) error {
	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"sessionDate", input.SessionDate},
		{"slot", input.Slot},
		{"question1", input.Question1},
		{"question2", input.Question2},
		{"question3", input.Question3},
	}
	for _, r := range required {
		if r.value == "" {
			return NewValidationError(fmt.Sprintf("missing required field: %s", r.field))
		}
	}
	return nil
}

func (s *DefaultClinicBookingService) knownSlot(slot string) bool {
	for _, candidate := range s.slots() {
		if candidate == slot {
			return true
		}
	}
	return false
}

func (s *DefaultClinicBookingService) cachedCount(ctx context.Context, date string) (int, bool) {
	if s.Cache == nil {
		return 0, false
	}
	val, err := s.Cache.Get(ctx, availabilityKey(date)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *DefaultClinicBookingService) cacheCount(ctx context.Context, date string, count int) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, availabilityKey(date), strconv.Itoa(count), availabilityCacheTTL).Err(); err != nil {
		s.Logger.Debug("failed to cache availability count", zap.String("date", date), zap.Error(err))
	}
}

func (s *DefaultClinicBookingService) invalidateCount(ctx context.Context, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityKey(date)).Err(); err != nil {
		s.Logger.Debug("failed to invalidate availability count", zap.String("date", date), zap.Error(err))
	}
}

func availabilityKey(date string) string {
	return "clinic:availability:" + date
}

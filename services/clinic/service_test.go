package clinic

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "ciba/database/repository/booking"
	"ciba/models"
)

// fakeBookingRepo enforces the (sessionDate, slot) uniqueness constraint in
// memory, the way the real unique index does.
type fakeBookingRepo struct {
	mu        sync.Mutex
	booked    map[string]map[string]bool
	insertErr error
	queryErr  error
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

func (f *fakeBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booked == nil {
		f.booked = make(map[string]map[string]bool)
	}
	if f.booked[b.SessionDate][b.Slot] {
		return bookingRepo.ErrSlotTaken
	}
	if f.booked[b.SessionDate] == nil {
		f.booked[b.SessionDate] = make(map[string]bool)
	}
	f.booked[b.SessionDate][b.Slot] = true
	b.ID = "booking-" + b.SessionDate + "-" + b.Slot
	return nil
}

func (f *fakeBookingRepo) SlotsByDate(ctx context.Context, date string) ([]string, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	slots := make([]string, 0, len(f.booked[date]))
	for slot := range f.booked[date] {
		slots = append(slots, slot)
	}
	return slots, nil
}

func (f *fakeBookingRepo) CountByDates(ctx context.Context, dates []string) (map[string]int, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		if n := len(f.booked[d]); n > 0 {
			counts[d] = n
		}
	}
	return counts, nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeDispatcher) EnqueueBookingConfirmation(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func newTestService(repo *fakeBookingRepo, dispatcher *fakeDispatcher, slots []string) *DefaultClinicBookingService {
	svc := &DefaultClinicBookingService{
		Repo:   repo,
		Slots:  slots,
		Logger: zap.NewNop(),
	}
	if dispatcher != nil {
		svc.Dispatcher = dispatcher
	}
	return svc
}

func validInput() models.BookingInput {
	return models.BookingInput{
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "+254700000000",
		SessionDate: "2025-06-03",
		Slot:        "16:30 - 16:50",
		Question1:   "How do I validate my market?",
		Question2:   "When should I raise?",
		Question3:   "What should my first hire be?",
	}
}

func TestCreateBookingValidationCompleteness(t *testing.T) {
	clear := []struct {
		field string
		apply func(*models.BookingInput)
	}{
		{"name", func(in *models.BookingInput) { in.Name = "" }},
		{"email", func(in *models.BookingInput) { in.Email = "" }},
		{"phone", func(in *models.BookingInput) { in.Phone = "" }},
		{"sessionDate", func(in *models.BookingInput) { in.SessionDate = "" }},
		{"slot", func(in *models.BookingInput) { in.Slot = "" }},
		{"question1", func(in *models.BookingInput) { in.Question1 = "" }},
		{"question2", func(in *models.BookingInput) { in.Question2 = "" }},
		{"question3", func(in *models.BookingInput) { in.Question3 = "" }},
	}

	for _, tc := range clear {
		t.Run(tc.field, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			svc := newTestService(repo, nil, nil)

			input := validInput()
			tc.apply(&input)

			booking, err := svc.CreateBooking(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, CodeValidation, ErrorCode(err))
			assert.Nil(t, booking)
			assert.Empty(t, repo.booked, "nothing may be persisted on validation failure")
		})
	}
}

func TestCreateBookingRejectsUnknownSlot(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, nil, nil)

	input := validInput()
	input.Slot = "03:00 - 03:20"

	_, err := svc.CreateBooking(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestCreateBookingConflict(t *testing.T) {
	repo := &fakeBookingRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher, nil)

	first, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = svc.CreateBooking(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, CodeSlotTaken, ErrorCode(err))
	assert.Equal(t, 1, dispatcher.calls, "only the winning booking is dispatched")
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeDispatcher{}, nil)

	const attempts = 2
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), validInput())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case ErrorCode(err) == CodeSlotTaken:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one request may win the slot")
	assert.Equal(t, 1, conflicts, "exactly one request must lose the race")
}

func TestAvailabilityScenario(t *testing.T) {
	// Two slots, capacity 2, date 2025-06-03.
	slots := []string{"09:00-09:20", "09:20-09:40"}
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, nil, slots)
	ctx := context.Background()

	book := func(slot string) error {
		input := validInput()
		input.Slot = slot
		_, err := svc.CreateBooking(ctx, input)
		return err
	}

	require.NoError(t, book("09:00-09:20"))

	err := book("09:00-09:20")
	require.Error(t, err)
	assert.Equal(t, CodeSlotTaken, ErrorCode(err))

	require.NoError(t, book("09:20-09:40"))

	booked, err := svc.GetBookedSlots(ctx, "2025-06-03")
	require.NoError(t, err)
	assert.ElementsMatch(t, slots, booked)

	availability, err := svc.GetDatesAvailability(ctx, []string{"2025-06-03"})
	require.NoError(t, err)
	require.Contains(t, availability, "2025-06-03")
	assert.Equal(t, models.DateAvailability{BookedCount: 2, IsFullyBooked: true}, availability["2025-06-03"])

	// Fully booked: every further attempt on that date is a conflict.
	err = book("09:20-09:40")
	require.Error(t, err)
	assert.Equal(t, CodeSlotTaken, ErrorCode(err))
}

func TestAvailabilityPartialDay(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	input := validInput()
	_, err := svc.CreateBooking(ctx, input)
	require.NoError(t, err)

	booked, err := svc.GetBookedSlots(ctx, input.SessionDate)
	require.NoError(t, err)
	assert.Equal(t, []string{input.Slot}, booked)

	availability, err := svc.GetDatesAvailability(ctx, []string{input.SessionDate, "2025-06-04"})
	require.NoError(t, err)
	assert.Equal(t, models.DateAvailability{BookedCount: 1, IsFullyBooked: false}, availability[input.SessionDate])
	assert.Equal(t, models.DateAvailability{BookedCount: 0, IsFullyBooked: false}, availability["2025-06-04"])
}

func TestGetDatesAvailabilityEmptyInput(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, nil, nil)

	availability, err := svc.GetDatesAvailability(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, availability)
}

func TestGetDatesAvailabilityBadDate(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, nil, nil)

	_, err := svc.GetDatesAvailability(context.Background(), []string{"not-a-date"})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestCreateBookingSucceedsWhenDispatcherFails(t *testing.T) {
	repo := &fakeBookingRepo{}
	dispatcher := &fakeDispatcher{err: assert.AnError}
	svc := newTestService(repo, dispatcher, nil)

	booking, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err, "notification failure must not fail the booking")
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestCreateBookingStoreUnavailable(t *testing.T) {
	repo := &fakeBookingRepo{insertErr: assert.AnError}
	svc := newTestService(repo, nil, nil)

	_, err := svc.CreateBooking(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, CodeUnavailable, ErrorCode(err))
}

func TestCreateBookingNormalizesDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, nil, nil)

	input := validInput()
	input.SessionDate = "2025-06-03T18:30:00Z"

	booking, err := svc.CreateBooking(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", booking.SessionDate)
}

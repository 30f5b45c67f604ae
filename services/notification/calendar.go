package notification

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"ciba/models"
	"ciba/services/clinic"
)

// GoogleCalendarService creates clinic session events on a shared Google
// Calendar using a service account.
type GoogleCalendarService struct {
	svc        *calendar.Service
	calendarID string
}

// NewGoogleCalendarService authenticates with the service-account
// credentials file and binds to the target calendar.
func NewGoogleCalendarService(ctx context.Context, credentialsFile, calendarID string) (*GoogleCalendarService, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return &GoogleCalendarService{svc: svc, calendarID: calendarID}, nil
}

// CreateSessionEvent inserts an event spanning the booked slot. A slot that
// does not parse is rejected rather than silently defaulted.
func (g *GoogleCalendarService) CreateSessionEvent(ctx context.Context, booking *models.Booking) error {
	startAt, endAt, err := sessionTimes(booking)
	if err != nil {
		return err
	}

	event := &calendar.Event{
		Summary: fmt.Sprintf("Startup clinic: %s", booking.Name),
		Description: fmt.Sprintf(
			"Booked by %s (%s, %s)\n\nQuestions:\n1. %s\n2. %s\n3. %s",
			booking.Name, booking.Email, booking.Phone,
			booking.Question1, booking.Question2, booking.Question3,
		),
		Start: &calendar.EventDateTime{
			DateTime: startAt.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: endAt.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	if _, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}

// sessionTimes resolves a booking's date and slot into concrete UTC
// instants.
func sessionTimes(booking *models.Booking) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", booking.SessionDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid session date %q: %w", booking.SessionDate, err)
	}
	start, end, err := clinic.ParseSlotRange(booking.Slot)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startAt := time.Date(day.Year(), day.Month(), day.Day(), start.Hour, start.Minute, 0, 0, time.UTC)
	endAt := time.Date(day.Year(), day.Month(), day.Day(), end.Hour, end.Minute, 0, 0, time.UTC)
	return startAt, endAt, nil
}

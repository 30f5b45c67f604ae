package notification

import (
	"context"

	"ciba/models"
)

// Task type routed through the asynq queue.
const TypeBookingNotify = "booking:notify"

// Dispatcher hands confirmed bookings to the background notification
// worker. Enqueueing is decoupled from the request/response cycle: the
// requester gets their confirmation as soon as the insert is durable.
type Dispatcher interface {
	EnqueueBookingConfirmation(ctx context.Context, booking *models.Booking) error
}

// CalendarService creates an external calendar event for a confirmed
// session. Failures are best-effort.
type CalendarService interface {
	CreateSessionEvent(ctx context.Context, booking *models.Booking) error
}

// Mailer sends clinic confirmation and newsletter mail.
type Mailer interface {
	SendBookingConfirmation(booking *models.Booking) error
	Send(to, subject, htmlBody string) error
}

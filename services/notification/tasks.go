package notification

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"ciba/metrics"
	"ciba/models"
)

// BookingNotifier handles queued booking notification tasks: the calendar
// event and the confirmation email. Either integration may be nil when the
// deployment does not configure it.
type BookingNotifier struct {
	Calendar CalendarService
	Mailer   Mailer
	Logger   *zap.Logger
}

// HandleBookingNotify runs both side effects independently. A failed
// channel is logged and counted, and the task error is returned so asynq
// retries it; the retry/dead queue plus the failure counter are the
// operator's view of lost notifications. The booking itself was confirmed
// long before this runs.
func (n *BookingNotifier) HandleBookingNotify(ctx context.Context, task *asynq.Task) error {
	var booking models.Booking
	if err := json.Unmarshal(task.Payload(), &booking); err != nil {
		n.Logger.Error("invalid notification payload", zap.Error(err))
		return nil // malformed payloads are not retryable
	}

	var failed error
	if n.Calendar != nil {
		if err := n.Calendar.CreateSessionEvent(ctx, &booking); err != nil {
			n.Logger.Error("failed to create calendar event",
				zap.String("bookingId", booking.ID), zap.Error(err))
			metrics.IncNotifyFailure("calendar")
			failed = errors.Join(failed, err)
		}
	}
	if n.Mailer != nil {
		if err := n.Mailer.SendBookingConfirmation(&booking); err != nil {
			n.Logger.Error("failed to send confirmation email",
				zap.String("bookingId", booking.ID), zap.Error(err))
			metrics.IncNotifyFailure("email")
			failed = errors.Join(failed, err)
		}
	}
	return failed
}

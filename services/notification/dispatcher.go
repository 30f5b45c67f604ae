package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"ciba/models"
)

// AsynqDispatcher enqueues notification tasks onto the Redis-backed queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher builds a dispatcher over the given Redis options.
func NewAsynqDispatcher(redisOpt asynq.RedisClientOpt) *AsynqDispatcher {
	return &AsynqDispatcher{client: asynq.NewClient(redisOpt)}
}

// EnqueueBookingConfirmation schedules calendar and email side effects for
// a booking that is already durable.
func (d *AsynqDispatcher) EnqueueBookingConfirmation(ctx context.Context, booking *models.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingNotify, payload)
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

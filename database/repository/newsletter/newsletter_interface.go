package newsletterRepo

import (
	"context"

	"ciba/models"
)

// SubscriberRepository defines persistence operations for newsletter
// subscribers.
type SubscriberRepository interface {
	EnsureIndexes() error
	Upsert(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.Subscriber, error)
}

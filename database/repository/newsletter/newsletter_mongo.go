package newsletterRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ciba/models"
)

// mongoSubscriberRepo implements SubscriberRepository using MongoDB.
type mongoSubscriberRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriberRepo constructs a subscriber repository over the given client.
func NewMongoSubscriberRepo(client *mongo.Client, dbName string) SubscriberRepository {
	return &mongoSubscriberRepo{
		coll: client.Database(dbName).Collection("newsletter_subscribers"),
	}
}

// EnsureIndexes creates the unique email index so repeated subscriptions
// collapse into one subscriber document.
func (r *mongoSubscriberRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create subscriber indexes: %w", err)
	}
	return nil
}

// Upsert records a subscription. Already-subscribed emails are a no-op.
func (r *mongoSubscriberRepo) Upsert(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":           uuid.New().String(),
			"email":        email,
			"subscribedAt": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}
	return nil
}

// List returns every subscriber.
func (r *mongoSubscriberRepo) List(ctx context.Context) ([]models.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subscribers []models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}
	return subscribers, nil
}

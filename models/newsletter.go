package models

import "time"

// Subscriber represents a newsletter recipient. Subscriptions come either
// from the dedicated subscribe endpoint or from a booking submitted with
// the newsletter side-flag set.
type Subscriber struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	SubscribedAt time.Time `bson:"subscribedAt" json:"subscribedAt"`
}

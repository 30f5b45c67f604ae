package models

import "time"

// Booking represents a confirmed clinic session booking. Bookings are
// created once on submission and never mutated afterwards.
type Booking struct {
	ID                  string    `bson:"id" json:"id"`                                   // Unique booking identifier (UUID)
	Name                string    `bson:"name" json:"name"`                               // Requester full name
	Email               string    `bson:"email" json:"email"`                             // Requester email
	Phone               string    `bson:"phone" json:"phone"`                             // Requester phone
	SessionDate         string    `bson:"sessionDate" json:"sessionDate"`                 // Session date in "YYYY-MM-DD" format (UTC calendar day)
	Slot                string    `bson:"slot" json:"slot"`                               // Time range string, e.g. "16:30 - 16:50"
	Question1           string    `bson:"question1" json:"question1"`                     // Free-text question for the mentor
	Question2           string    `bson:"question2" json:"question2"`                     //
	Question3           string    `bson:"question3" json:"question3"`                     //
	SubscribeNewsletter bool      `bson:"subscribeNewsletter" json:"subscribeNewsletter"` // Side-flag, irrelevant to slot allocation
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`                     // Timestamp when the booking was created
}

// BookingInput is the submission payload for a new booking. All fields
// except SubscribeNewsletter are required.
type BookingInput struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	SessionDate         string `json:"sessionDate"`
	Slot                string `json:"slot"`
	Question1           string `json:"question1"`
	Question2           string `json:"question2"`
	Question3           string `json:"question3"`
	SubscribeNewsletter bool   `json:"subscribeNewsletter"`
}

// DateAvailability is the derived availability view for one candidate date.
// It is computed on demand, never stored.
type DateAvailability struct {
	BookedCount   int  `json:"bookedCount"`
	IsFullyBooked bool `json:"isFullyBooked"`
}

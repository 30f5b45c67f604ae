package bookingRepo

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoBookingRepo implements BookingRepository using MongoDB.
type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a booking repository over the given client.
func NewMongoBookingRepo(client *mongo.Client, dbName string) BookingRepository {
	return &mongoBookingRepo{
		coll: client.Database(dbName).Collection("clinic_bookings"),
	}
}

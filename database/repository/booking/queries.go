// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SlotsByDate returns the slot strings already booked for the given date.
func (r *mongoBookingRepo) SlotsByDate(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"sessionDate": date}
	opts := options.Find().SetProjection(bson.M{"slot": 1, "_id": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Slot string `bson:"slot"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booked slots: %w", err)
	}

	slots := make([]string, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, row.Slot)
	}
	return slots, nil
}

// CountByDates returns booking counts grouped by session date for the given
// candidate dates. Dates with no bookings are absent from the result; the
// service layer fills in zeroes.
func (r *mongoBookingRepo) CountByDates(ctx context.Context, dates []string) (map[string]int, error) {
	counts := make(map[string]int, len(dates))
	if len(dates) == 0 {
		return counts, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"sessionDate": bson.M{"$in": dates}}},
		{"$group": bson.M{"_id": "$sessionDate", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date  string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking counts: %w", err)
	}

	for _, row := range rows {
		counts[row.Date] = row.Count
	}
	return counts, nil
}

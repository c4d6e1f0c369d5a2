package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a reservation by its unique ID.
func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	return &res, nil
}

// ExistsOverlapping checks for any reservation of the personnel whose
// half-open interval overlaps iv: date < iv.End AND end_time > iv.Start.
func (r *MongoReservationRepo) ExistsOverlapping(ctx context.Context, personnelID, barbershopID string, iv models.Interval, statuses []string) (bool, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"personnel_id": personnelID,
		"date":         bson.M{"$lt": iv.End},
		"end_time":     bson.M{"$gt": iv.Start},
		"status":       bson.M{"$in": statuses},
	}
	if barbershopID != "" {
		filter["barbershop_id"] = barbershopID
	}

	count, err := r.coll.CountDocuments(cctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("overlap query failed: %w", err)
	}
	return count > 0, nil
}

// ListUpcomingForClient returns the client's reservations starting at or
// after now, soonest first.
func (r *MongoReservationRepo) ListUpcomingForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error) {
	filter := bson.M{"client_id": clientID, "date": bson.M{"$gte": now}}
	return r.list(filter, bson.D{{Key: "date", Value: 1}})
}

// ListPastForClient returns the client's reservations before now, most
// recent first.
func (r *MongoReservationRepo) ListPastForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error) {
	filter := bson.M{"client_id": clientID, "date": bson.M{"$lt": now}}
	return r.list(filter, bson.D{{Key: "date", Value: -1}})
}

// ListForPersonnel returns a personnel's reservations, optionally limited
// to a day window and/or a status.
func (r *MongoReservationRepo) ListForPersonnel(ctx context.Context, personnelID string, day *models.Interval, status string) ([]models.Reservation, error) {
	filter := bson.M{"personnel_id": personnelID}
	if day != nil {
		filter["date"] = bson.M{"$gte": day.Start, "$lt": day.End}
	}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter, bson.D{{Key: "date", Value: 1}})
}

// ListForClient returns a client's full reservation history, oldest first.
func (r *MongoReservationRepo) ListForClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	return r.list(bson.M{"client_id": clientID}, bson.D{{Key: "date", Value: 1}})
}

// ListAll returns every reservation, soonest first.
func (r *MongoReservationRepo) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return r.list(bson.M{}, bson.D{{Key: "date", Value: 1}})
}

func (r *MongoReservationRepo) list(filter bson.M, sort bson.D) ([]models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("reservation query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return out, nil
}

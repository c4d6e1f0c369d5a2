package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepo implements Repository using MongoDB. It owns the
// reservations collection and shares the slot_claims collection with the
// blocked-slot repository.
type MongoReservationRepo struct {
	coll   *mongo.Collection
	claims *mongo.Collection
}

// NewMongoReservationRepo creates a new instance of Repository using MongoDB.
func NewMongoReservationRepo() Repository {
	repo := &MongoReservationRepo{
		coll:   database.Collection("reservations"),
		claims: database.Collection("slot_claims"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries, plus
// the unique (personnel_id, minute) claim index that closes the
// check-then-act race on slot allocation.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	reservationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "personnel_id", Value: 1}, {Key: "date", Value: 1}, {Key: "end_time", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "barbershop_id", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, reservationIndexes); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}

	claimIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "personnel_id", Value: 1}, {Key: "minute", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "ref_id", Value: 1}}},
	}
	if _, err := r.claims.Indexes().CreateMany(ctx, claimIndexes); err != nil {
		return fmt.Errorf("failed to create slot claim indexes: %w", err)
	}
	return nil
}

package blockedslotRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/database"
	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlockedSlotRepo implements Repository using MongoDB. It shares the
// slot_claims collection with the reservation repository, so a blocked slot
// and a reservation can never hold the same personnel minute.
type MongoBlockedSlotRepo struct {
	coll   *mongo.Collection
	claims *mongo.Collection
}

// NewMongoBlockedSlotRepo creates a new instance of Repository using MongoDB.
func NewMongoBlockedSlotRepo() Repository {
	repo := &MongoBlockedSlotRepo{
		coll:   database.Collection("blocked_slots"),
		claims: database.Collection("slot_claims"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create blocked slot indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBlockedSlotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "personnel_id", Value: 1}, {Key: "date", Value: 1}, {Key: "end_time", Value: 1}}},
		{Keys: bson.D{{Key: "barbershop_id", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create blocked slot indexes: %w", err)
	}
	return nil
}

// Create inserts the blocked slot and its minute claims in one transaction.
func (r *MongoBlockedSlotRepo) Create(ctx context.Context, slot *models.BlockedSlot) error {
	slot.CreatedAt = time.Now()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	claims := models.ClaimsFor(slot.PersonnelID, slot.ID, models.ClaimKindBlockedSlot, slot.Interval())
	claimDocs := make([]interface{}, 0, len(claims))
	for _, c := range claims {
		claimDocs = append(claimDocs, c)
	}

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, slot); err != nil {
			return fmt.Errorf("insert blocked slot failed: %w", err)
		}
		if _, err := r.claims.InsertMany(sc, claimDocs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert slot claims failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("blocked slot transaction failed: %w", err)
	}
	return nil
}

// DeleteNear removes the blocked slot whose start falls within ±tolerance
// of the requested instant and releases its claims. The tolerance window
// absorbs sub-second and timezone rounding from callers.
func (r *MongoBlockedSlotRepo) DeleteNear(ctx context.Context, personnelID, barbershopID string, start time.Time, tolerance time.Duration) (*models.BlockedSlot, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var deleted models.BlockedSlot
	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"personnel_id":  personnelID,
			"barbershop_id": barbershopID,
			"date": bson.M{
				"$gte": start.Add(-tolerance),
				"$lte": start.Add(tolerance),
			},
		}
		if err := r.coll.FindOneAndDelete(sc, filter).Decode(&deleted); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("delete blocked slot failed: %w", err)
		}
		if _, err := r.claims.DeleteMany(sc, bson.M{"ref_id": deleted.ID}); err != nil {
			return fmt.Errorf("release slot claims failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("unblock transaction failed: %w", err)
	}
	return &deleted, nil
}

// ExistsOverlapping checks for any blocked slot of the personnel whose
// half-open interval overlaps iv.
func (r *MongoBlockedSlotRepo) ExistsOverlapping(ctx context.Context, personnelID string, iv models.Interval) (bool, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"personnel_id": personnelID,
		"date":         bson.M{"$lt": iv.End},
		"end_time":     bson.M{"$gt": iv.Start},
	}
	count, err := r.coll.CountDocuments(cctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("overlap query failed: %w", err)
	}
	return count > 0, nil
}

// ListForDay returns the personnel's blocked slots whose start falls inside
// the day window, earliest first.
func (r *MongoBlockedSlotRepo) ListForDay(ctx context.Context, personnelID, barbershopID string, day models.Interval) ([]models.BlockedSlot, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"personnel_id":  personnelID,
		"barbershop_id": barbershopID,
		"date":          bson.M{"$gte": day.Start, "$lt": day.End},
	}
	cursor, err := r.coll.Find(cctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("blocked slot query failed: %w", err)
	}
	defer cursor.Close(cctx)

	var out []models.BlockedSlot
	if err := cursor.All(cctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode blocked slots: %w", err)
	}
	return out, nil
}

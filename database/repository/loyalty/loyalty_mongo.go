package loyaltyRepo

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

// MongoLoyaltyRepo implements Repository using MongoDB.
type MongoLoyaltyRepo struct {
	coll *mongo.Collection
}

// NewMongoLoyaltyRepo creates a new instance of Repository using MongoDB.
func NewMongoLoyaltyRepo() Repository {
	repo := &MongoLoyaltyRepo{coll: database.Collection("loyalty")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create loyalty indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLoyaltyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create loyalty indexes: %w", err)
	}
	return nil
}

// Award increments the balance and appends the history entry in a single
// findOneAndUpdate upsert, so concurrent awards never lose increments.
func (r *MongoLoyaltyRepo) Award(ctx context.Context, userID string, points int, description string) (*models.Loyalty, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$inc": bson.M{"points": points},
		"$push": bson.M{"history": models.LoyaltyEntry{
			Description: description,
			Points:      points,
			Date:        now,
		}},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var ledger models.Loyalty
	if err := r.coll.FindOneAndUpdate(cctx, filter, update, opts).Decode(&ledger); err != nil {
		return nil, fmt.Errorf("failed to award %d points to user %s: %w", points, userID, err)
	}
	return &ledger, nil
}

// GetByUser returns the user's ledger, creating an empty one on first read.
func (r *MongoLoyaltyRepo) GetByUser(ctx context.Context, userID string) (*models.Loyalty, error) {
	cctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"points":     0,
			"history":    []models.LoyaltyEntry{},
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var ledger models.Loyalty
	if err := r.coll.FindOneAndUpdate(cctx, filter, update, opts).Decode(&ledger); err != nil {
		return nil, fmt.Errorf("failed to fetch loyalty for user %s: %w", userID, err)
	}
	return &ledger, nil
}

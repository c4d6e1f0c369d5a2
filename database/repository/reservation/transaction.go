package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts the reservation document and one slot claim per minute of
// its interval in a single transaction. The unique (personnel_id, minute)
// index aborts the transaction when any minute is already held, so of two
// racing writers for an overlapping window exactly one commits.
func (r *MongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	claims := models.ClaimsFor(res.PersonnelID, res.ID, models.ClaimKindReservation, res.Interval())
	claimDocs := make([]interface{}, 0, len(claims))
	for _, c := range claims {
		claimDocs = append(claimDocs, c)
	}

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
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
		return fmt.Errorf("reservation transaction failed: %w", err)
	}
	return nil
}

// SetStatus updates the reservation status. A transition to cancelled also
// releases the reservation's slot claims so the window opens up again; both
// writes commit in one transaction.
func (r *MongoReservationRepo) SetStatus(ctx context.Context, id, status string) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": id}, update)
		if err != nil {
			return fmt.Errorf("update reservation status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if status == models.StatusCancelled {
			if _, err := r.claims.DeleteMany(sc, bson.M{"ref_id": id}); err != nil {
				return fmt.Errorf("release slot claims failed: %w", err)
			}
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
			return ErrNotFound
		}
		return fmt.Errorf("status transaction failed: %w", err)
	}
	return nil
}

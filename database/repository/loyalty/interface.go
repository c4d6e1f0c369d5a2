package loyaltyRepo

import (
	"context"

	"barberbook/models"
)

// Repository defines the loyalty ledger: an atomic point balance plus an
// append-only history per user.
type Repository interface {
	// Award increments the user's balance and appends one history entry in
	// a single upsert, creating the ledger record on first award.
	Award(ctx context.Context, userID string, points int, description string) (*models.Loyalty, error)
	// GetByUser returns the user's ledger, creating an empty one if none
	// exists yet.
	GetByUser(ctx context.Context, userID string) (*models.Loyalty, error)
}

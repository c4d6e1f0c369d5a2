package loyalty

import (
	"context"
	"fmt"

	loyaltyRepo "barberbook/database/repository/loyalty"
	"barberbook/models"
)

// Service is the loyalty ledger consumed by the scheduling side effects and
// the client-facing balance endpoint.
type Service interface {
	Award(ctx context.Context, userID string, points int, description string) (*models.Loyalty, error)
	ForUser(ctx context.Context, userID string) (*models.Loyalty, error)
}

// DefaultLoyaltyService is the production implementation over the Mongo
// ledger repository.
type DefaultLoyaltyService struct {
	Repo loyaltyRepo.Repository
}

// Award credits points and records one history entry.
func (s *DefaultLoyaltyService) Award(ctx context.Context, userID string, points int, description string) (*models.Loyalty, error) {
	if userID == "" || points <= 0 {
		return nil, fmt.Errorf("loyalty award requires a user and a positive point amount")
	}
	return s.Repo.Award(ctx, userID, points, description)
}

// ForUser returns the user's balance and history, creating an empty ledger
// on first read.
func (s *DefaultLoyaltyService) ForUser(ctx context.Context, userID string) (*models.Loyalty, error) {
	return s.Repo.GetByUser(ctx, userID)
}

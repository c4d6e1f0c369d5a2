package userRepo

import (
	"context"
	"errors"

	"barberbook/models"
)

// ErrNotFound is returned when no user matches the given ID.
var ErrNotFound = errors.New("user not found")

// Repository defines the user reads the scheduling core needs, plus the
// push-token writes owned by the notification pipeline.
type Repository interface {
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdatePushToken stores a device push token on the user record.
	UpdatePushToken(ctx context.Context, id, token string) error
	// ClearPushToken removes a stale or invalid push token.
	ClearPushToken(ctx context.Context, id string) error
}

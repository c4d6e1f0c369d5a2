package serviceRepo

import (
	"context"
	"errors"

	"barberbook/models"
)

// ErrNotFound is returned when no service matches the given ID.
var ErrNotFound = errors.New("service not found")

// Repository defines read access to the service catalog. Catalog CRUD is
// owned elsewhere; the scheduling core only reads.
type Repository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByIDs retrieves every service whose ID appears in ids. Callers
	// compare the returned count against the requested count to detect
	// unknown IDs.
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

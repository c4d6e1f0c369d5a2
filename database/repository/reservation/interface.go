package reservationRepo

import (
	"context"
	"errors"
	"time"

	"barberbook/models"
)

// ErrSlotTaken is returned when the slot-claim unique index rejects a
// write, meaning another reservation or blocked slot already holds part of
// the requested window.
var ErrSlotTaken = errors.New("slot minutes already claimed")

// ErrNotFound is returned when no reservation matches the given ID.
var ErrNotFound = errors.New("reservation not found")

// Repository defines data access for reservations and the slot claims that
// guard them.
type Repository interface {
	// Create persists a reservation together with its slot claims in one
	// transaction. Returns ErrSlotTaken if any claimed minute is already
	// held for the personnel.
	Create(ctx context.Context, res *models.Reservation) error
	// GetByID retrieves a reservation by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// SetStatus updates the reservation status. Transitioning to cancelled
	// releases the reservation's slot claims in the same transaction.
	SetStatus(ctx context.Context, id, status string) error
	// ExistsOverlapping reports whether any reservation for the personnel
	// (optionally scoped to a barbershop) in one of the given statuses
	// overlaps the half-open interval.
	ExistsOverlapping(ctx context.Context, personnelID, barbershopID string, iv models.Interval, statuses []string) (bool, error)
	// ListUpcomingForClient returns the client's reservations starting at or
	// after now, soonest first.
	ListUpcomingForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error)
	// ListPastForClient returns the client's reservations before now, most
	// recent first.
	ListPastForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error)
	// ListForPersonnel returns a personnel's reservations, optionally
	// restricted to a day window and/or a status.
	ListForPersonnel(ctx context.Context, personnelID string, day *models.Interval, status string) ([]models.Reservation, error)
	// ListForClient returns a client's full reservation history, oldest
	// first.
	ListForClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	// ListAll returns every reservation, soonest first.
	ListAll(ctx context.Context) ([]models.Reservation, error)
}

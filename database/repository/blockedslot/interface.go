package blockedslotRepo

import (
	"context"
	"errors"
	"time"

	"barberbook/models"
)

// ErrSlotTaken is returned when the slot-claim unique index rejects the
// block, meaning a reservation or another blocked slot already holds part
// of the window.
var ErrSlotTaken = errors.New("slot minutes already claimed")

// ErrNotFound is returned when no blocked slot matches the lookup.
var ErrNotFound = errors.New("blocked slot not found")

// Repository defines data access for blocked slots.
type Repository interface {
	// Create persists a blocked slot together with its slot claims in one
	// transaction. Returns ErrSlotTaken if any claimed minute is already
	// held for the personnel.
	Create(ctx context.Context, slot *models.BlockedSlot) error
	// DeleteNear removes the blocked slot for personnel+barbershop whose
	// start falls within ±tolerance of start, releasing its claims. Returns
	// ErrNotFound when nothing matches.
	DeleteNear(ctx context.Context, personnelID, barbershopID string, start time.Time, tolerance time.Duration) (*models.BlockedSlot, error)
	// ExistsOverlapping reports whether any blocked slot for the personnel
	// overlaps the half-open interval.
	ExistsOverlapping(ctx context.Context, personnelID string, iv models.Interval) (bool, error)
	// ListForDay returns the personnel's blocked slots whose start falls
	// inside the day window, earliest first.
	ListForDay(ctx context.Context, personnelID, barbershopID string, day models.Interval) ([]models.BlockedSlot, error)
}

package scheduling

import (
	"context"
	"time"

	blockedslotRepo "barberbook/database/repository/blockedslot"
	reservationRepo "barberbook/database/repository/reservation"
	serviceRepo "barberbook/database/repository/service"
	userRepo "barberbook/database/repository/user"
	"barberbook/models"
)

// CreateReservationRequest carries a client's booking request. Date is the
// ISO start instant; BarbershopID and PersonnelID are optional and resolved
// from the services when omitted.
type CreateReservationRequest struct {
	ClientID     string
	ServiceIDs   []string
	Date         string
	BarbershopID string
	PersonnelID  string
}

// StatusUpdateRequest carries a personnel-driven status transition.
// ClientID, when supplied, is cross-checked against the reservation.
type StatusUpdateRequest struct {
	ReservationID string
	PersonnelID   string
	Status        string
	ClientID      string
}

// BlockSlotRequest carries a personnel's request to mark a window
// unavailable. Time is "HH:MM" on Date ("2006-01-02"), interpreted in the
// deployment's reference timezone.
type BlockSlotRequest struct {
	PersonnelID     string
	BarbershopID    string
	Date            string
	Time            string
	DurationMinutes int
	IsMonthly       bool
	IsAdminBlock    bool
}

// UnblockSlotRequest identifies a blocked slot to remove by its start time.
type UnblockSlotRequest struct {
	PersonnelID  string
	BarbershopID string
	Date         string
	Time         string
}

// Dispatcher enqueues side effects to run after the response is sent.
// Implementations are fire-and-forget: enqueue failures are logged and
// never surface to the caller.
type Dispatcher interface {
	EnqueuePush(userID, title, body string, data map[string]string)
	EnqueueLoyaltyAward(userID string, points int, description string)
}

// Service is the reservation scheduling engine: booking with conflict
// detection, status transitions, blocked-slot management and the read
// surface over committed time.
type Service interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.ReservationView, error)
	UpdateStatus(ctx context.Context, req StatusUpdateRequest) (*models.Reservation, error)
	CancelByClient(ctx context.Context, reservationID, clientID string) (*models.Reservation, error)

	BlockSlot(ctx context.Context, req BlockSlotRequest) (*models.BlockedSlot, error)
	UnblockSlot(ctx context.Context, req UnblockSlotRequest) error
	BlockedSlotsForDay(ctx context.Context, personnelID, barbershopID, date string) ([]models.BlockedSlot, error)

	UpcomingForClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	PastForClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	ForPersonnelOnDate(ctx context.Context, personnelID, date, status string) ([]models.Reservation, error)
	ClientHistory(ctx context.Context, clientID string) ([]models.Reservation, error)
	AllReservations(ctx context.Context) ([]models.Reservation, error)
}

// DefaultSchedulingService is the production implementation over the Mongo
// repositories.
type DefaultSchedulingService struct {
	Reservations reservationRepo.Repository
	Blocked      blockedslotRepo.Repository
	Users        userRepo.Repository
	Services     serviceRepo.Repository
	Dispatcher   Dispatcher
	// Location is the reference timezone for day windows and slot times.
	Location *time.Location
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func (s *DefaultSchedulingService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

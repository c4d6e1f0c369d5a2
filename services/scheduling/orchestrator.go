package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	reservationRepo "barberbook/database/repository/reservation"
	serviceRepo "barberbook/database/repository/service"
	userRepo "barberbook/database/repository/user"
	"barberbook/models"
	"barberbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReservation validates a booking request, computes its interval,
// rejects overlapping slots and persists a pending reservation. The
// personnel is notified asynchronously after the write commits.
func (s *DefaultSchedulingService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.ReservationView, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, NewInvalidRequest("missing or invalid service(s)")
	}

	start, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, NewInvalidRequest("invalid date provided")
	}

	// Resolve the barbershop from the first service when not supplied.
	barbershopID := req.BarbershopID
	if barbershopID == "" {
		first, err := s.Services.GetByID(ctx, req.ServiceIDs[0])
		if err != nil {
			if err == serviceRepo.ErrNotFound {
				return nil, NewInvalidRequest("barbershop id is required or cannot be derived")
			}
			utils.GetLogger().Error("service lookup failed", zap.Error(err))
			return nil, NewInternal("could not load services")
		}
		if first.BarbershopID == "" {
			return nil, NewInvalidRequest("barbershop id is required or cannot be derived")
		}
		barbershopID = first.BarbershopID
	}

	services, err := s.Services.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		utils.GetLogger().Error("service lookup failed", zap.Error(err))
		return nil, NewInternal("could not load services")
	}
	if len(services) != len(req.ServiceIDs) {
		return nil, NewNotFound("one or more services not found")
	}
	for _, svc := range services {
		if svc.BarbershopID != barbershopID {
			return nil, NewInvalidRequest("all services must belong to the selected barbershop")
		}
	}

	personnelID, err := s.resolvePersonnel(ctx, req.PersonnelID, services)
	if err != nil {
		return nil, err
	}

	totalMinutes := 0
	price := 0.0
	for i := range services {
		totalMinutes += services[i].DurationOrDefault()
		price += services[i].Price
	}
	iv := models.Interval{Start: start, End: start.Add(time.Duration(totalMinutes) * time.Minute)}

	conflict, err := s.hasConflict(ctx, personnelID, barbershopID, iv)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, NewConflict("this slot is already booked or blocked")
	}

	res := &models.Reservation{
		ID:           uuid.New().String(),
		ClientID:     req.ClientID,
		PersonnelID:  personnelID,
		BarbershopID: barbershopID,
		ServiceIDs:   req.ServiceIDs,
		Date:         iv.Start,
		EndTime:      iv.End,
		Status:       models.StatusPending,
		Price:        price,
	}
	if err := s.Reservations.Create(ctx, res); err != nil {
		if err == reservationRepo.ErrSlotTaken {
			// Lost the race between the conflict check and the write; the
			// claim index caught it.
			return nil, NewConflict("this slot is already booked or blocked")
		}
		utils.GetLogger().Error("reservation insert failed",
			zap.String("personnelId", personnelID), zap.Error(err))
		return nil, NewInternal("could not create reservation")
	}

	view := s.expand(ctx, res, services)

	names := make([]string, 0, len(services))
	for i := range services {
		names = append(names, services[i].Name)
	}
	s.Dispatcher.EnqueuePush(personnelID,
		"New reservation pending",
		fmt.Sprintf("New booking for %s at %s", strings.Join(names, ", "), iv.Start.In(s.location()).Format("15:04")),
		map[string]string{"reservationId": res.ID, "type": "reservation_pending"},
	)

	return view, nil
}

// resolvePersonnel returns the personnel for the booking: the explicit ID
// when given (verified to exist), otherwise the single personnel shared by
// every requested service.
func (s *DefaultSchedulingService) resolvePersonnel(ctx context.Context, explicit string, services []models.Service) (string, error) {
	if explicit != "" {
		if _, err := s.Users.GetByID(ctx, explicit); err != nil {
			if err == userRepo.ErrNotFound {
				return "", NewInvalidRequest("invalid personnel id")
			}
			utils.GetLogger().Error("personnel lookup failed", zap.Error(err))
			return "", NewInternal("could not verify personnel")
		}
		return explicit, nil
	}

	unique := make(map[string]struct{})
	for i := range services {
		if len(services[i].PersonnelIDs) > 0 {
			unique[services[i].PersonnelIDs[0]] = struct{}{}
		}
	}
	if len(unique) > 1 {
		return "", NewInvalidRequest("all services must be assigned to the same personnel")
	}
	for id := range unique {
		return id, nil
	}
	return "", NewInvalidRequest("personnel is required for booking")
}

// expand builds the client-facing view. Lookup failures degrade to a bare
// view rather than failing the committed reservation.
func (s *DefaultSchedulingService) expand(ctx context.Context, res *models.Reservation, services []models.Service) *models.ReservationView {
	view := &models.ReservationView{Reservation: *res}
	view.Services = make([]models.ServiceSummary, 0, len(services))
	for i := range services {
		view.Services = append(view.Services, services[i].Summary())
	}
	if client, err := s.Users.GetByID(ctx, res.ClientID); err == nil {
		summary := client.Summary()
		view.Client = &summary
	}
	if personnel, err := s.Users.GetByID(ctx, res.PersonnelID); err == nil {
		summary := personnel.Summary()
		view.Personnel = &summary
	}
	return view
}

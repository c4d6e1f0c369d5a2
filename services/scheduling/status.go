package scheduling

import (
	"context"
	"fmt"
	"strings"

	reservationRepo "barberbook/database/repository/reservation"
	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// UpdateStatus applies a personnel-driven transition (pending→confirmed or
// {pending,confirmed}→cancelled). Re-applying the current status is a
// no-op, so loyalty points are awarded at most once per reservation. Side
// effects are enqueued after the status write commits.
func (s *DefaultSchedulingService) UpdateStatus(ctx context.Context, req StatusUpdateRequest) (*models.Reservation, error) {
	if req.Status != models.StatusConfirmed && req.Status != models.StatusCancelled {
		return nil, NewInvalidRequest("invalid status, must be 'confirmed' or 'cancelled'")
	}

	res, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.PersonnelID != req.PersonnelID {
		return nil, NewForbidden("not authorized to update this reservation")
	}
	if req.ClientID != "" && res.ClientID != req.ClientID {
		return nil, NewInvalidRequest("client id does not match reservation")
	}
	if res.Status == models.StatusCancelled {
		return nil, NewInvalidRequest("reservation is already cancelled")
	}
	if res.Status == req.Status {
		return res, nil
	}

	if err := s.Reservations.SetStatus(ctx, res.ID, req.Status); err != nil {
		utils.GetLogger().Error("status update failed",
			zap.String("reservationId", res.ID), zap.Error(err))
		return nil, NewInternal("could not update reservation status")
	}
	res.Status = req.Status

	switch req.Status {
	case models.StatusConfirmed:
		s.enqueueLoyaltyAward(ctx, res)
		s.Dispatcher.EnqueuePush(res.ClientID,
			"Booking confirmed",
			fmt.Sprintf("Your booking at %s has been confirmed.", s.slotTime(res)),
			map[string]string{"reservationId": res.ID, "type": "reservation_confirmed"},
		)
	case models.StatusCancelled:
		s.Dispatcher.EnqueuePush(res.ClientID,
			"Booking cancelled",
			fmt.Sprintf("Unfortunately, your booking at %s has been cancelled.", s.slotTime(res)),
			map[string]string{"reservationId": res.ID, "type": "reservation_cancelled"},
		)
	}
	return res, nil
}

// CancelByClient lets a client cancel their own future reservation. The
// record survives with status=cancelled; only its slot claims are freed.
func (s *DefaultSchedulingService) CancelByClient(ctx context.Context, reservationID, clientID string) (*models.Reservation, error) {
	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.ClientID != clientID {
		return nil, NewForbidden("not authorized to cancel this reservation")
	}
	if res.Status == models.StatusCancelled {
		return nil, NewInvalidRequest("reservation is already cancelled")
	}
	if !res.Date.After(s.clock()) {
		return nil, NewInvalidRequest("cannot cancel a past reservation")
	}

	if err := s.Reservations.SetStatus(ctx, res.ID, models.StatusCancelled); err != nil {
		utils.GetLogger().Error("client cancellation failed",
			zap.String("reservationId", res.ID), zap.Error(err))
		return nil, NewInternal("could not cancel reservation")
	}
	res.Status = models.StatusCancelled

	s.Dispatcher.EnqueuePush(res.PersonnelID,
		"Reservation cancelled",
		fmt.Sprintf("The booking at %s was cancelled by the client.", s.slotTime(res)),
		map[string]string{"reservationId": res.ID, "type": "reservation_cancelled"},
	)
	return res, nil
}

// enqueueLoyaltyAward sums the loyalty points of the reservation's services
// and queues the accrual. Failures here are logged only; the confirmation
// has already committed.
func (s *DefaultSchedulingService) enqueueLoyaltyAward(ctx context.Context, res *models.Reservation) {
	services, err := s.Services.GetByIDs(ctx, res.ServiceIDs)
	if err != nil {
		utils.GetLogger().Error("loyalty points lookup failed",
			zap.String("reservationId", res.ID), zap.Error(err))
		return
	}
	points := 0
	names := make([]string, 0, len(services))
	for i := range services {
		points += services[i].LoyaltyPoints
		names = append(names, services[i].Name)
	}
	if points <= 0 {
		return
	}
	s.Dispatcher.EnqueueLoyaltyAward(res.ClientID, points,
		fmt.Sprintf("Confirmed booking: %s", strings.Join(names, ", ")))
}

func (s *DefaultSchedulingService) getReservation(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == reservationRepo.ErrNotFound {
			return nil, NewNotFound("reservation not found")
		}
		utils.GetLogger().Error("reservation lookup failed", zap.String("reservationId", id), zap.Error(err))
		return nil, NewInternal("could not load reservation")
	}
	return res, nil
}

func (s *DefaultSchedulingService) slotTime(res *models.Reservation) string {
	return res.Date.In(s.location()).Format("15:04")
}

package scheduling

import (
	"context"

	userRepo "barberbook/database/repository/user"
	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// UpcomingForClient returns the client's not-yet-started reservations,
// soonest first. Cancelled reservations are kept out of the upcoming view.
func (s *DefaultSchedulingService) UpcomingForClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	all, err := s.Reservations.ListUpcomingForClient(ctx, clientID, s.clock())
	if err != nil {
		utils.GetLogger().Error("upcoming query failed", zap.String("clientId", clientID), zap.Error(err))
		return nil, NewInternal("could not fetch upcoming reservations")
	}
	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.Status != models.StatusCancelled {
			out = append(out, r)
		}
	}
	return out, nil
}

// PastForClient returns the client's already-started reservations, most
// recent first.
func (s *DefaultSchedulingService) PastForClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	out, err := s.Reservations.ListPastForClient(ctx, clientID, s.clock())
	if err != nil {
		utils.GetLogger().Error("past query failed", zap.String("clientId", clientID), zap.Error(err))
		return nil, NewInternal("could not fetch past reservations")
	}
	return out, nil
}

// ForPersonnelOnDate returns a personnel's reservations, optionally limited
// to one day ("2006-01-02") and/or one status.
func (s *DefaultSchedulingService) ForPersonnelOnDate(ctx context.Context, personnelID, date, status string) ([]models.Reservation, error) {
	personnel, err := s.Users.GetByID(ctx, personnelID)
	if err != nil {
		if err == userRepo.ErrNotFound {
			return nil, NewNotFound("personnel not found")
		}
		utils.GetLogger().Error("personnel lookup failed", zap.String("personnelId", personnelID), zap.Error(err))
		return nil, NewInternal("could not load personnel")
	}
	if personnel.Role != models.RolePersonnel {
		return nil, NewInvalidRequest("the specified user is not a personnel")
	}

	var day *models.Interval
	if date != "" {
		window, err := s.dayWindow(date)
		if err != nil {
			return nil, NewInvalidRequest("invalid date provided")
		}
		day = &window
	}

	out, err := s.Reservations.ListForPersonnel(ctx, personnelID, day, status)
	if err != nil {
		utils.GetLogger().Error("personnel reservations query failed",
			zap.String("personnelId", personnelID), zap.Error(err))
		return nil, NewInternal("could not fetch reservations")
	}
	return out, nil
}

// ClientHistory returns a client's full reservation history for personnel
// or admin review.
func (s *DefaultSchedulingService) ClientHistory(ctx context.Context, clientID string) ([]models.Reservation, error) {
	if clientID == "" {
		return nil, NewInvalidRequest("client id is required")
	}
	out, err := s.Reservations.ListForClient(ctx, clientID)
	if err != nil {
		utils.GetLogger().Error("client history query failed", zap.String("clientId", clientID), zap.Error(err))
		return nil, NewInternal("could not fetch client history")
	}
	return out, nil
}

// AllReservations returns every reservation for the admin dashboard.
func (s *DefaultSchedulingService) AllReservations(ctx context.Context) ([]models.Reservation, error) {
	out, err := s.Reservations.ListAll(ctx)
	if err != nil {
		utils.GetLogger().Error("list all reservations failed", zap.Error(err))
		return nil, NewInternal("could not fetch reservations")
	}
	return out, nil
}

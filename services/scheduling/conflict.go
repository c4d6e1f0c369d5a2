package scheduling

import (
	"context"

	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// occupyingStatuses are the reservation statuses that hold a slot. Pending
// reservations occupy their window too, otherwise two pending requests for
// the same slot could both be accepted.
var occupyingStatuses = []string{models.StatusPending, models.StatusConfirmed}

// hasConflict reports whether any occupying reservation or blocked slot for
// the personnel overlaps the candidate interval. Store errors fail closed:
// they propagate instead of being read as "no conflict".
func (s *DefaultSchedulingService) hasConflict(ctx context.Context, personnelID, barbershopID string, iv models.Interval) (bool, error) {
	reserved, err := s.Reservations.ExistsOverlapping(ctx, personnelID, barbershopID, iv, occupyingStatuses)
	if err != nil {
		utils.GetLogger().Error("reservation overlap check failed",
			zap.String("personnelId", personnelID), zap.Error(err))
		return false, NewInternal("could not verify slot availability")
	}
	if reserved {
		return true, nil
	}

	blocked, err := s.Blocked.ExistsOverlapping(ctx, personnelID, iv)
	if err != nil {
		utils.GetLogger().Error("blocked slot overlap check failed",
			zap.String("personnelId", personnelID), zap.Error(err))
		return false, NewInternal("could not verify slot availability")
	}
	return blocked, nil
}

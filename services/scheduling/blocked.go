package scheduling

import (
	"context"
	"time"

	blockedslotRepo "barberbook/database/repository/blockedslot"
	"barberbook/models"
	"barberbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// unblockTolerance is the symmetric window used to match a deletion request
// to a previously created blocked slot, absorbing sub-second and timezone
// rounding from callers.
const unblockTolerance = 30 * time.Second

// BlockSlot marks a window unavailable for the personnel. The same overlap
// semantics as reservations apply; the shared claim index additionally
// rejects blocks over already-reserved minutes.
func (s *DefaultSchedulingService) BlockSlot(ctx context.Context, req BlockSlotRequest) (*models.BlockedSlot, error) {
	if req.Date == "" || req.Time == "" || req.BarbershopID == "" {
		return nil, NewInvalidRequest("date, time and barbershop id are required")
	}
	start, err := s.parseSlotStart(req.Date, req.Time)
	if err != nil {
		return nil, NewInvalidRequest("invalid date or time format")
	}

	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = models.DefaultServiceMinutes
	}
	iv := models.Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}

	overlapping, err := s.Blocked.ExistsOverlapping(ctx, req.PersonnelID, iv)
	if err != nil {
		utils.GetLogger().Error("blocked slot overlap check failed",
			zap.String("personnelId", req.PersonnelID), zap.Error(err))
		return nil, NewInternal("could not verify slot availability")
	}
	if overlapping {
		return nil, NewConflict("overlaps with an existing blocked slot")
	}

	slot := &models.BlockedSlot{
		ID:           uuid.New().String(),
		PersonnelID:  req.PersonnelID,
		BarbershopID: req.BarbershopID,
		Date:         iv.Start,
		EndTime:      iv.End,
		IsMonthly:    req.IsMonthly,
		IsAdminBlock: req.IsAdminBlock,
	}
	if err := s.Blocked.Create(ctx, slot); err != nil {
		if err == blockedslotRepo.ErrSlotTaken {
			return nil, NewConflict("this slot is already booked or blocked")
		}
		utils.GetLogger().Error("blocked slot insert failed",
			zap.String("personnelId", req.PersonnelID), zap.Error(err))
		return nil, NewInternal("could not create blocked slot")
	}
	return slot, nil
}

// UnblockSlot removes the blocked slot whose start falls within the
// tolerance window of the requested instant.
func (s *DefaultSchedulingService) UnblockSlot(ctx context.Context, req UnblockSlotRequest) error {
	if req.Date == "" || req.Time == "" || req.BarbershopID == "" {
		return NewInvalidRequest("date, time and barbershop id are required")
	}
	start, err := s.parseSlotStart(req.Date, req.Time)
	if err != nil {
		return NewInvalidRequest("invalid date or time format")
	}

	if _, err := s.Blocked.DeleteNear(ctx, req.PersonnelID, req.BarbershopID, start, unblockTolerance); err != nil {
		if err == blockedslotRepo.ErrNotFound {
			return NewNotFound("no blocked slot found at this time")
		}
		utils.GetLogger().Error("unblock failed",
			zap.String("personnelId", req.PersonnelID), zap.Error(err))
		return NewInternal("could not remove blocked slot")
	}
	return nil
}

// BlockedSlotsForDay returns the personnel's blocked slots for one calendar
// day in the reference timezone.
func (s *DefaultSchedulingService) BlockedSlotsForDay(ctx context.Context, personnelID, barbershopID, date string) ([]models.BlockedSlot, error) {
	if date == "" || barbershopID == "" {
		return nil, NewInvalidRequest("date and barbershop id are required")
	}
	day, err := s.dayWindow(date)
	if err != nil {
		return nil, NewInvalidRequest("invalid date provided")
	}

	slots, err := s.Blocked.ListForDay(ctx, personnelID, barbershopID, day)
	if err != nil {
		utils.GetLogger().Error("blocked slot day query failed",
			zap.String("personnelId", personnelID), zap.Error(err))
		return nil, NewInternal("could not fetch blocked slots")
	}
	return slots, nil
}

// parseSlotStart combines a "2006-01-02" date and an "15:04" time in the
// reference timezone.
func (s *DefaultSchedulingService) parseSlotStart(date, hhmm string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location())
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

// dayWindow returns the half-open [startOfDay, nextDay) interval for a
// "2006-01-02" date in the reference timezone.
func (s *DefaultSchedulingService) dayWindow(date string) (models.Interval, error) {
	start, err := time.ParseInLocation("2006-01-02", date, s.location())
	if err != nil {
		return models.Interval{}, err
	}
	return models.Interval{Start: start, End: start.AddDate(0, 0, 1)}, nil
}

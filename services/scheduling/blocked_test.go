package scheduling

import (
	"context"
	"testing"
	"time"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSlot(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	slot, err := e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:     "barber-1",
		BarbershopID:    "shop-1",
		Date:            "2026-03-01",
		Time:            "14:00",
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC), slot.Date.UTC())
	assert.Equal(t, time.Date(2026, 3, 1, 14, 45, 0, 0, time.UTC), slot.EndTime.UTC())
	assert.False(t, slot.IsAdminBlock)
}

func TestBlockSlotDefaultsDuration(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())

	slot, err := e.svc.BlockSlot(context.Background(), BlockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(models.DefaultServiceMinutes)*time.Minute, slot.EndTime.Sub(slot.Date))
}

func TestBlockSlotValidation(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	_, err := e.svc.BlockSlot(ctx, BlockSlotRequest{PersonnelID: "barber-1", Date: "2026-03-01", Time: "14:00"})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))

	_, err = e.svc.BlockSlot(ctx, BlockSlotRequest{PersonnelID: "barber-1", BarbershopID: "shop-1", Date: "March 1st", Time: "14:00"})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))

	_, err = e.svc.BlockSlot(ctx, BlockSlotRequest{PersonnelID: "barber-1", BarbershopID: "shop-1", Date: "2026-03-01", Time: "2pm"})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))
}

func TestBlockSlotRejectsOverlap(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	_, err := e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:     "barber-1",
		BarbershopID:    "shop-1",
		Date:            "2026-03-01",
		Time:            "14:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:30",
	})
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))

	// Another barber is free to block the same window.
	_, err = e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:  "barber-2",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:30",
	})
	assert.NoError(t, err)
}

func TestBlockSlotRejectsReservedWindow(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	_, err := e.svc.CreateReservation(ctx, CreateReservationRequest{
		ClientID:   "client-1",
		ServiceIDs: []string{"svc-cut"},
		Date:       "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	// The claim index catches the collision with the reservation even though
	// no blocked slot overlaps.
	_, err = e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "10:15",
	})
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestUnblockSlotTolerance(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	_, err := e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:00",
	})
	require.NoError(t, err)

	// 14:01 is outside the tolerance window.
	err = e.svc.UnblockSlot(ctx, UnblockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:01",
	})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	// An exact match removes the slot and frees its window.
	err = e.svc.UnblockSlot(ctx, UnblockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:00",
	})
	require.NoError(t, err)

	_, err = e.svc.CreateReservation(ctx, CreateReservationRequest{
		ClientID:   "client-1",
		ServiceIDs: []string{"svc-cut"},
		Date:       "2026-03-01T14:00:00Z",
	})
	assert.NoError(t, err)
}

func TestUnblockSlotToleranceBoundary(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	// Stored starts carry seconds offsets; the request instant parses to a
	// whole minute, so the offset is the whole distance to absorb.
	near := &models.BlockedSlot{
		ID:           "blk-near",
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         time.Date(2026, 3, 1, 14, 0, 20, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 1, 14, 30, 20, 0, time.UTC),
	}
	require.NoError(t, e.blocked.Create(ctx, near))

	far := &models.BlockedSlot{
		ID:           "blk-far",
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         time.Date(2026, 3, 1, 15, 0, 40, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 1, 15, 30, 40, 0, time.UTC),
	}
	require.NoError(t, e.blocked.Create(ctx, far))

	// 20 seconds away: inside the tolerance window, the slot is removed.
	err := e.svc.UnblockSlot(ctx, UnblockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "14:00",
	})
	require.NoError(t, err)

	// 40 seconds away: outside the tolerance window.
	err = e.svc.UnblockSlot(ctx, UnblockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-01",
		Time:         "15:00",
	})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	day, err := e.svc.BlockedSlotsForDay(ctx, "barber-1", "shop-1", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "blk-far", day[0].ID)
}

func TestBlockedSlotsForDay(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()

	for _, hhmm := range []string{"16:00", "09:00"} {
		_, err := e.svc.BlockSlot(ctx, BlockSlotRequest{
			PersonnelID:  "barber-1",
			BarbershopID: "shop-1",
			Date:         "2026-03-01",
			Time:         hhmm,
		})
		require.NoError(t, err)
	}
	_, err := e.svc.BlockSlot(ctx, BlockSlotRequest{
		PersonnelID:  "barber-1",
		BarbershopID: "shop-1",
		Date:         "2026-03-02",
		Time:         "09:00",
	})
	require.NoError(t, err)

	slots, err := e.svc.BlockedSlotsForDay(ctx, "barber-1", "shop-1", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	// Earliest first.
	assert.True(t, slots[0].Date.Before(slots[1].Date))

	_, err = e.svc.BlockedSlotsForDay(ctx, "barber-1", "shop-1", "")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))
}

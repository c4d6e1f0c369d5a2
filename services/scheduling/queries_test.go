package scheduling

import (
	"context"
	"testing"
	"time"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, e *env) (past, upcoming *models.ReservationView) {
	t.Helper()

	// Book both while the clock is early enough, then move it between them.
	e.now = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	past = mustBook(t, e, "2026-02-10T10:00:00Z")
	upcoming = mustBook(t, e, "2026-03-05T10:00:00Z")
	e.now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return past, upcoming
}

func TestUpcomingAndPastForClient(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()
	pastView, upcomingView := seedHistory(t, e)

	up, err := e.svc.UpcomingForClient(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, upcomingView.ID, up[0].ID)

	pastList, err := e.svc.PastForClient(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, pastList, 1)
	assert.Equal(t, pastView.ID, pastList[0].ID)

	// Other clients see nothing.
	none, err := e.svc.UpcomingForClient(ctx, "client-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestForPersonnelOnDate(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()
	_, upcomingView := seedHistory(t, e)

	all, err := e.svc.ForPersonnelOnDate(ctx, "barber-1", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := e.svc.ForPersonnelOnDate(ctx, "barber-1", "2026-03-05", "")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, upcomingView.ID, day[0].ID)

	confirmed, err := e.svc.ForPersonnelOnDate(ctx, "barber-1", "", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	_, err = e.svc.ForPersonnelOnDate(ctx, "ghost", "", "")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	// A client ID is not a personnel.
	_, err = e.svc.ForPersonnelOnDate(ctx, "client-1", "", "")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))

	_, err = e.svc.ForPersonnelOnDate(ctx, "barber-1", "not-a-date", "")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))
}

func TestClientHistoryIncludesCancelled(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	ctx := context.Background()
	_, upcomingView := seedHistory(t, e)

	_, err := e.svc.CancelByClient(ctx, upcomingView.ID, "client-1")
	require.NoError(t, err)

	history, err := e.svc.ClientHistory(ctx, "client-1")
	require.NoError(t, err)
	assert.Len(t, history, 2, "cancelled reservations stay in the history")

	_, err = e.svc.ClientHistory(ctx, "")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, CodeOf(err))
}

func TestAllReservations(t *testing.T) {
	e := newEnv(fixtureUsers(), fixtureServices())
	seedHistory(t, e)

	all, err := e.svc.AllReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Soonest first.
	assert.True(t, all[0].Date.Before(all[1].Date))
}

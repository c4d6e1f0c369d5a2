package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	blockedslotRepo "barberbook/database/repository/blockedslot"
	reservationRepo "barberbook/database/repository/reservation"
	serviceRepo "barberbook/database/repository/service"
	userRepo "barberbook/database/repository/user"
	"barberbook/models"
)

// claimTable mimics the shared slot_claims collection: one row per
// (personnel, minute) with all-or-nothing inserts, so the same
// single-writer-wins behavior as the unique index.
type claimTable struct {
	mu     sync.Mutex
	byKey  map[string]string   // "personnel:minute" -> refID
	byRef  map[string][]string // refID -> keys
}

func newClaimTable() *claimTable {
	return &claimTable{byKey: make(map[string]string), byRef: make(map[string][]string)}
}

func claimKey(c models.SlotClaim) string {
	return fmt.Sprintf("%s:%d", c.PersonnelID, c.Minute)
}

func (t *claimTable) insert(claims []models.SlotClaim) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range claims {
		if _, taken := t.byKey[claimKey(c)]; taken {
			return reservationRepo.ErrSlotTaken
		}
	}
	for _, c := range claims {
		key := claimKey(c)
		t.byKey[key] = c.RefID
		t.byRef[c.RefID] = append(t.byRef[c.RefID], key)
	}
	return nil
}

func (t *claimTable) release(refID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, key := range t.byRef[refID] {
		delete(t.byKey, key)
	}
	delete(t.byRef, refID)
}

type fakeReservationRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.Reservation
	claims *claimTable

	// checkBarrier, when set, rendezvouses concurrent ExistsOverlapping
	// calls so every racer finishes the pre-check before any write runs.
	checkBarrier *sync.WaitGroup
}

func newFakeReservationRepo(claims *claimTable) *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[string]*models.Reservation), claims: claims}
}

func (r *fakeReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	claims := models.ClaimsFor(res.PersonnelID, res.ID, models.ClaimKindReservation, res.Interval())
	if err := r.claims.insert(claims); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *res
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.byID[res.ID] = &stored
	return nil
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	out := *res
	return &out, nil
}

func (r *fakeReservationRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	res, ok := r.byID[id]
	if ok {
		res.Status = status
		res.UpdatedAt = time.Now()
	}
	r.mu.Unlock()
	if !ok {
		return reservationRepo.ErrNotFound
	}
	if status == models.StatusCancelled {
		r.claims.release(id)
	}
	return nil
}

func (r *fakeReservationRepo) ExistsOverlapping(ctx context.Context, personnelID, barbershopID string, iv models.Interval, statuses []string) (bool, error) {
	if r.checkBarrier != nil {
		r.checkBarrier.Done()
		r.checkBarrier.Wait()
	}
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.byID {
		if res.PersonnelID != personnelID || !allowed[res.Status] {
			continue
		}
		if barbershopID != "" && res.BarbershopID != barbershopID {
			continue
		}
		if res.Interval().Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) list(match func(*models.Reservation) bool, newestFirst bool) []models.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Reservation, 0)
	for _, res := range r.byID {
		if match(res) {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *fakeReservationRepo) ListUpcomingForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error) {
	return r.list(func(res *models.Reservation) bool {
		return res.ClientID == clientID && !res.Date.Before(now)
	}, false), nil
}

func (r *fakeReservationRepo) ListPastForClient(ctx context.Context, clientID string, now time.Time) ([]models.Reservation, error) {
	return r.list(func(res *models.Reservation) bool {
		return res.ClientID == clientID && res.Date.Before(now)
	}, true), nil
}

func (r *fakeReservationRepo) ListForPersonnel(ctx context.Context, personnelID string, day *models.Interval, status string) ([]models.Reservation, error) {
	return r.list(func(res *models.Reservation) bool {
		if res.PersonnelID != personnelID {
			return false
		}
		if status != "" && res.Status != status {
			return false
		}
		if day != nil && (res.Date.Before(day.Start) || !res.Date.Before(day.End)) {
			return false
		}
		return true
	}, false), nil
}

func (r *fakeReservationRepo) ListForClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	return r.list(func(res *models.Reservation) bool {
		return res.ClientID == clientID
	}, false), nil
}

func (r *fakeReservationRepo) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return r.list(func(*models.Reservation) bool { return true }, false), nil
}

type fakeBlockedRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.BlockedSlot
	claims *claimTable
}

func newFakeBlockedRepo(claims *claimTable) *fakeBlockedRepo {
	return &fakeBlockedRepo{byID: make(map[string]*models.BlockedSlot), claims: claims}
}

func (r *fakeBlockedRepo) Create(ctx context.Context, slot *models.BlockedSlot) error {
	claims := models.ClaimsFor(slot.PersonnelID, slot.ID, models.ClaimKindBlockedSlot, slot.Interval())
	if err := r.claims.insert(claims); err != nil {
		return blockedslotRepo.ErrSlotTaken
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *slot
	stored.CreatedAt = time.Now()
	r.byID[slot.ID] = &stored
	return nil
}

func (r *fakeBlockedRepo) DeleteNear(ctx context.Context, personnelID, barbershopID string, start time.Time, tolerance time.Duration) (*models.BlockedSlot, error) {
	r.mu.Lock()
	var found *models.BlockedSlot
	for _, slot := range r.byID {
		if slot.PersonnelID != personnelID || slot.BarbershopID != barbershopID {
			continue
		}
		diff := slot.Date.Sub(start)
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			found = slot
			break
		}
	}
	if found != nil {
		delete(r.byID, found.ID)
	}
	r.mu.Unlock()
	if found == nil {
		return nil, blockedslotRepo.ErrNotFound
	}
	r.claims.release(found.ID)
	out := *found
	return &out, nil
}

func (r *fakeBlockedRepo) ExistsOverlapping(ctx context.Context, personnelID string, iv models.Interval) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, slot := range r.byID {
		if slot.PersonnelID == personnelID && slot.Interval().Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBlockedRepo) ListForDay(ctx context.Context, personnelID, barbershopID string, day models.Interval) ([]models.BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BlockedSlot, 0)
	for _, slot := range r.byID {
		if slot.PersonnelID != personnelID || slot.BarbershopID != barbershopID {
			continue
		}
		if slot.Date.Before(day.Start) || !slot.Date.Before(day.End) {
			continue
		}
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[string]*models.User)}
	for i := range users {
		u := users[i]
		r.byID[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) UpdatePushToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.PushToken = token
	return nil
}

func (r *fakeUserRepo) ClearPushToken(ctx context.Context, id string) error {
	return r.UpdatePushToken(ctx, id, "")
}

type fakeServiceRepo struct {
	byID map[string]*models.Service

	// getErr, when set, is returned by GetByID to simulate a store failure.
	getErr error
}

func newFakeServiceRepo(services ...models.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{byID: make(map[string]*models.Service)}
	for i := range services {
		s := services[i]
		r.byID[s.ID] = &s
	}
	return r
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.byID[id]
	if !ok {
		return nil, serviceRepo.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *fakeServiceRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

type recordedPush struct {
	UserID string
	Title  string
	Body   string
	Data   map[string]string
}

// fakeDispatcher records pushes and applies loyalty awards synchronously
// to an in-memory ledger, standing in for the queue worker.
type fakeDispatcher struct {
	mu      sync.Mutex
	pushes  []recordedPush
	ledgers map[string]*models.Loyalty
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{ledgers: make(map[string]*models.Loyalty)}
}

func (d *fakeDispatcher) EnqueuePush(userID, title, body string, data map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushes = append(d.pushes, recordedPush{UserID: userID, Title: title, Body: body, Data: data})
}

func (d *fakeDispatcher) EnqueueLoyaltyAward(userID string, points int, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ledger, ok := d.ledgers[userID]
	if !ok {
		ledger = &models.Loyalty{UserID: userID}
		d.ledgers[userID] = ledger
	}
	ledger.Points += points
	ledger.History = append(ledger.History, models.LoyaltyEntry{
		Description: description,
		Points:      points,
		Date:        time.Now(),
	})
}

func (d *fakeDispatcher) pushesFor(userID string) []recordedPush {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]recordedPush, 0)
	for _, p := range d.pushes {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (d *fakeDispatcher) ledgerFor(userID string) models.Loyalty {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ledger, ok := d.ledgers[userID]; ok {
		return *ledger
	}
	return models.Loyalty{UserID: userID}
}

// env bundles a scheduling service over fresh fakes with a fixed clock.
type env struct {
	svc          *DefaultSchedulingService
	reservations *fakeReservationRepo
	blocked      *fakeBlockedRepo
	users        *fakeUserRepo
	catalog      *fakeServiceRepo
	dispatcher   *fakeDispatcher
	now          time.Time
}

func newEnv(users []models.User, services []models.Service) *env {
	claims := newClaimTable()
	e := &env{
		reservations: newFakeReservationRepo(claims),
		blocked:      newFakeBlockedRepo(claims),
		users:        newFakeUserRepo(users...),
		catalog:      newFakeServiceRepo(services...),
		dispatcher:   newFakeDispatcher(),
		now:          time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	e.svc = &DefaultSchedulingService{
		Reservations: e.reservations,
		Blocked:      e.blocked,
		Users:        e.users,
		Services:     e.catalog,
		Dispatcher:   e.dispatcher,
		now:          func() time.Time { return e.now },
	}
	return e
}

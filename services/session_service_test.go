package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage/memstore"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

func newSessionFixture(t *testing.T, today string) (*SessionService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	clk := clock.FixedClock(today)
	return NewSessionService(store, clk, NewHabitService(store, clk)), store
}

func seedUser(t *testing.T, store *memstore.Store, lastUpdated string) {
	t.Helper()
	require.NoError(t, store.SetUser(context.Background(), &user.User{
		UID:             testUID,
		Name:            "Kim",
		LastUpdatedDate: lastUpdated,
	}))
}

func seedHabit(t *testing.T, store *memstore.Store, name string, typ habit.Type, successDates []string) string {
	t.Helper()
	id, err := store.CreateHabit(context.Background(), testUID, &habit.Habit{
		Name:         name,
		Type:         typ,
		SuccessDates: successDates,
	})
	require.NoError(t, err)
	return id
}

func TestStartUnregisteredUser(t *testing.T) {
	svc, _ := newSessionFixture(t, testToday)

	_, err := svc.Start(context.Background(), testUID)
	assert.ErrorIs(t, err, ErrUserNotRegistered)
}

func TestStartFirstSession(t *testing.T) {
	svc, store := newSessionFixture(t, testToday)
	seedUser(t, store, "")

	greeting, err := svc.Start(context.Background(), testUID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", greeting.Message)
	assert.Equal(t, testToday, greeting.Today)
	assert.False(t, greeting.Reconciled)

	u, err := store.GetUser(context.Background(), testUID)
	require.NoError(t, err)
	assert.Equal(t, testToday, u.LastUpdatedDate)
}

func TestStartSameDayIsNoOp(t *testing.T) {
	svc, store := newSessionFixture(t, testToday)
	seedUser(t, store, testToday)
	id := seedHabit(t, store, "no smoking", habit.TypeMaintain, []string{"2024-12-08"})

	greeting, err := svc.Start(context.Background(), testUID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", greeting.Message)
	assert.False(t, greeting.Reconciled)
	assert.Equal(t, 0, greeting.DaysAway)

	h, err := store.GetHabit(context.Background(), testUID, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-08"}, h.SuccessDates)
}

func TestStartClockSkewLeavesEverythingAlone(t *testing.T) {
	svc, store := newSessionFixture(t, testToday)
	seedUser(t, store, "2024-12-15")
	id := seedHabit(t, store, "no smoking", habit.TypeMaintain, []string{"2024-12-08"})

	greeting, err := svc.Start(context.Background(), testUID)
	require.NoError(t, err)
	assert.False(t, greeting.Reconciled)

	u, err := store.GetUser(context.Background(), testUID)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-15", u.LastUpdatedDate)

	h, err := store.GetHabit(context.Background(), testUID, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-08"}, h.SuccessDates)
}

func TestStartRolloverTypeDivergence(t *testing.T) {
	svc, store := newSessionFixture(t, "2024-12-05")
	ctx := context.Background()
	seedUser(t, store, "2024-12-01")

	maintainID := seedHabit(t, store, "no smoking", habit.TypeMaintain, []string{"2024-12-01"})
	formingID := seedHabit(t, store, "meditate", habit.TypeForming, []string{"2024-12-01"})

	greeting, err := svc.Start(ctx, testUID)
	require.NoError(t, err)
	assert.True(t, greeting.Reconciled)
	assert.Equal(t, 4, greeting.DaysAway)
	assert.Equal(t, "Welcome back! It's been 4 day(s) since your last visit.", greeting.Message)

	// Maintained habit collects the skipped days 12-02..12-04 as passes.
	// Neither endpoint is added: 12-01 was already there and 12-05 stays
	// open for the user to mark.
	m, err := store.GetHabit(ctx, testUID, maintainID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2024-12-01", "2024-12-02", "2024-12-03", "2024-12-04"}, m.SuccessDates)
	assert.Equal(t, 4, m.TotalSuccessCount)
	assert.Equal(t, 4, m.Streak)

	// Forming habit gets nothing for free and the gap ends its run.
	f, err := store.GetHabit(ctx, testUID, formingID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-01"}, f.SuccessDates)
	assert.Equal(t, 1, f.TotalSuccessCount)
	assert.Equal(t, 0, f.Streak)

	u, err := store.GetUser(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-05", u.LastUpdatedDate)
}

func TestStartRolloverLongAbsence(t *testing.T) {
	svc, store := newSessionFixture(t, "2024-12-09")
	ctx := context.Background()
	seedUser(t, store, "2024-12-01")
	id := seedHabit(t, store, "no smoking", habit.TypeMaintain, []string{"2024-12-01"})

	greeting, err := svc.Start(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, 8, greeting.DaysAway)

	h, err := store.GetHabit(ctx, testUID, id)
	require.NoError(t, err)
	// 12-02..12-08 backfilled on top of the existing 12-01.
	assert.Equal(t, 8, h.TotalSuccessCount)
	// Today is unmarked but the run through yesterday stands.
	assert.Equal(t, 8, h.Streak)
}

func TestStartRolloverIdempotent(t *testing.T) {
	svc, store := newSessionFixture(t, "2024-12-05")
	ctx := context.Background()
	seedUser(t, store, "2024-12-01")
	id := seedHabit(t, store, "no smoking", habit.TypeMaintain, []string{"2024-12-01"})

	_, err := svc.Start(ctx, testUID)
	require.NoError(t, err)
	first, err := store.GetHabit(ctx, testUID, id)
	require.NoError(t, err)

	// The same day's session runs again; nothing moves.
	_, err = svc.Start(ctx, testUID)
	require.NoError(t, err)
	second, err := store.GetHabit(ctx, testUID, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// flakyStore fails aggregate writes for one habit so the partial-failure
// path can be exercised.
type flakyStore struct {
	*memstore.Store
	failHabitID string
}

func (f *flakyStore) UpdateHabitSuccess(ctx context.Context, uid, habitID string, successDates []string, total, streakCount int) error {
	if habitID == f.failHabitID {
		return errors.New("backend unavailable")
	}
	return f.Store.UpdateHabitSuccess(ctx, uid, habitID, successDates, total, streakCount)
}

func TestStartPartialFailureKeepsLastUpdatedDate(t *testing.T) {
	mem := memstore.New()
	ctx := context.Background()

	require.NoError(t, mem.SetUser(ctx, &user.User{UID: testUID, Name: "Kim", LastUpdatedDate: "2024-12-01"}))
	okID, err := mem.CreateHabit(ctx, testUID, &habit.Habit{Name: "read", Type: habit.TypeMaintain, SuccessDates: []string{"2024-12-01"}})
	require.NoError(t, err)
	badID, err := mem.CreateHabit(ctx, testUID, &habit.Habit{Name: "run", Type: habit.TypeMaintain, SuccessDates: []string{"2024-12-01"}})
	require.NoError(t, err)

	var store storage.Store = &flakyStore{Store: mem, failHabitID: badID}
	clk := clock.FixedClock("2024-12-05")
	svc := NewSessionService(store, clk, NewHabitService(store, clk))

	greeting, err := svc.Start(ctx, testUID)
	require.NoError(t, err)
	assert.True(t, greeting.Reconciled)

	// The healthy habit was processed.
	h, err := mem.GetHabit(ctx, testUID, okID)
	require.NoError(t, err)
	assert.Equal(t, 4, h.TotalSuccessCount)

	// lastUpdatedDate stays put so the next session retries the failed
	// habit. The backfill is add-if-absent, so the healthy habit won't
	// double-count on the retry.
	u, err := mem.GetUser(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", u.LastUpdatedDate)
}

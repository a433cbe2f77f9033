package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage/memstore"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

func newUserFixture(t *testing.T) (*UserService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return NewUserService(store, clock.FixedClock(testToday)), store
}

func TestRegisterSeedsLastUpdatedDate(t *testing.T) {
	svc, _ := newUserFixture(t)

	u, err := svc.Register(context.Background(), testUID, &user.RegisterRequest{Name: " Kim "})
	require.NoError(t, err)
	assert.Equal(t, testUID, u.UID)
	assert.Equal(t, "Kim", u.Name)
	assert.Equal(t, testToday, u.LastUpdatedDate)
}

func TestRegisterRequiresName(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), testUID, &user.RegisterRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestUpdateProfileKeepsLastUpdatedDate(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, testUID, &user.RegisterRequest{Name: "Kim"})
	require.NoError(t, err)

	u, err := svc.UpdateProfile(ctx, testUID, &user.UpdateProfileRequest{Name: "Alex"})
	require.NoError(t, err)
	assert.Equal(t, "Alex", u.Name)
	assert.Equal(t, testToday, u.LastUpdatedDate)

	_, err = svc.UpdateProfile(ctx, "missing", &user.UpdateProfileRequest{Name: "Alex"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccountRemovesHabits(t *testing.T) {
	svc, store := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, testUID, &user.RegisterRequest{Name: "Kim"})
	require.NoError(t, err)
	_, err = store.CreateHabit(ctx, testUID, &habit.Habit{Name: "run", Type: habit.TypeForming})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, testUID))

	_, err = svc.GetUser(ctx, testUID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	habits, err := store.ListHabits(ctx, testUID)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

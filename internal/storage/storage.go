package storage

import (
	"context"
	"errors"

	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// DailyStatusWrite pairs a habit with one per-day record for batch writes.
type DailyStatusWrite struct {
	HabitID string
	Status  *habit.DailyStatus
}

// Store is the document-store surface the app needs, scoped per user:
// point gets and sets, field-level updates, a transactional
// read-modify-write on a single dailyStatus document, and best-effort
// parallel batch writes. Backed by Cloud Firestore in production and by
// memstore in tests.
type Store interface {
	// users/{uid}
	GetUser(ctx context.Context, uid string) (*user.User, error)
	SetUser(ctx context.Context, u *user.User) error
	UpdateLastUpdatedDate(ctx context.Context, uid, date string) error
	// DeleteUser removes the user document and every habit and
	// dailyStatus record beneath it.
	DeleteUser(ctx context.Context, uid string) error

	// users/{uid}/habits/{habitID}
	// CreateHabit assigns a new document ID, stores the habit and
	// returns the ID.
	CreateHabit(ctx context.Context, uid string, h *habit.Habit) (string, error)
	GetHabit(ctx context.Context, uid, habitID string) (*habit.Habit, error)
	ListHabits(ctx context.Context, uid string) ([]*habit.Habit, error)
	UpdateHabitType(ctx context.Context, uid, habitID string, t habit.Type) error
	// UpdateHabitSuccess overwrites the three derived fields together so
	// a reader never sees a streak computed from a different success set.
	UpdateHabitSuccess(ctx context.Context, uid, habitID string, successDates []string, total, streakCount int) error
	// DeleteHabit removes the habit and its dailyStatus sub-records.
	DeleteHabit(ctx context.Context, uid, habitID string) error

	// users/{uid}/habits/{habitID}/dailyStatus/{date}
	GetDailyStatus(ctx context.Context, uid, habitID, date string) (*habit.DailyStatus, error)
	// ListDailyStatuses returns records ordered by date ascending.
	ListDailyStatuses(ctx context.Context, uid, habitID string) ([]*habit.DailyStatus, error)
	SetDailyStatus(ctx context.Context, uid, habitID string, st *habit.DailyStatus) error
	// TxSetDailyStatus runs mutate over the current record (nil when
	// absent) inside a transaction and persists the result. Overlapping
	// toggles on the same (habit, date) serialize here instead of
	// racing through independent get-then-set.
	TxSetDailyStatus(ctx context.Context, uid, habitID, date string, mutate func(cur *habit.DailyStatus) *habit.DailyStatus) error
	// BatchSetDailyStatuses applies the writes in parallel, best effort.
	BatchSetDailyStatuses(ctx context.Context, uid string, writes []DailyStatusWrite) error
}

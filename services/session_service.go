package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/dates"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/session"
)

// ErrUserNotRegistered is returned when the session gate runs for a uid
// that has no user document yet.
var ErrUserNotRegistered = errors.New("user not registered")

// SessionService runs the once-per-session date gate: it compares the
// user's lastUpdatedDate to today, backfills every habit across the
// elapsed days when the user has been away, and advances
// lastUpdatedDate. Re-invoking it on the same day is a no-op because the
// stored date is re-read on every call.
type SessionService struct {
	store  storage.Store
	clock  clock.Clock
	habits *HabitService
}

func NewSessionService(store storage.Store, clk clock.Clock, habits *HabitService) *SessionService {
	return &SessionService{store: store, clock: clk, habits: habits}
}

// Start is invoked after a successful sign-in or app resume.
func (s *SessionService) Start(ctx context.Context, uid string) (*session.Greeting, error) {
	today := s.clock.Today()
	mode := clock.Mode(s.clock)

	u, err := s.store.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("load user %s: %w", uid, err)
	}

	welcome := &session.Greeting{
		Message: "Welcome!",
		Mode:    mode,
		Today:   today,
	}

	// First run: no history to reconcile, just record today.
	if u.LastUpdatedDate == "" {
		if err := s.store.UpdateLastUpdatedDate(ctx, uid, today); err != nil {
			return nil, fmt.Errorf("initialize lastUpdatedDate: %w", err)
		}
		log.Printf("SessionService: first session for %s, lastUpdatedDate set to %s", uid, today)
		return welcome, nil
	}

	if u.LastUpdatedDate == today {
		return welcome, nil
	}

	gap, err := dates.DaysBetween(u.LastUpdatedDate, today)
	if err != nil {
		return nil, fmt.Errorf("compare dates: %w", err)
	}
	if gap < 0 {
		// Stored date is in the future: clock skew. Backfilling a
		// negative range is undefined, so leave everything alone.
		log.Printf("SessionService: lastUpdatedDate %s is after today %s for %s, skipping rollover", u.LastUpdatedDate, today, uid)
		return welcome, nil
	}

	failed := s.reconcile(ctx, uid, u.LastUpdatedDate, today)
	if failed > 0 {
		// Keep lastUpdatedDate where it is so the next session retries
		// the failed habits; the backfill is add-if-absent and safe to
		// re-run for the ones that succeeded.
		log.Printf("SessionService: rollover for %s left %d habit(s) unprocessed, lastUpdatedDate not advanced", uid, failed)
	} else if err := s.store.UpdateLastUpdatedDate(ctx, uid, today); err != nil {
		return nil, fmt.Errorf("advance lastUpdatedDate: %w", err)
	}

	welcome.Message = fmt.Sprintf("Welcome back! It's been %d day(s) since your last visit.", gap)
	welcome.DaysAway = gap
	welcome.Reconciled = true
	return welcome, nil
}

// reconcile walks every habit and applies the rollover rules across the
// dates strictly between lastSeen and today: MAINTAIN habits collect the
// skipped days as successes, FORMING habits collect nothing and their
// streak run ends at the gap. Each habit then gets its streak and total
// recomputed from the updated set and persisted.
//
// Habits are independent aggregates, so the work fans out per habit and
// one failure never blocks the others. Returns the number of habits
// whose update failed.
func (s *SessionService) reconcile(ctx context.Context, uid, lastSeen, today string) int {
	between, err := dates.Between(lastSeen, today)
	if err != nil {
		log.Printf("SessionService: bad rollover range %s..%s for %s: %v", lastSeen, today, uid, err)
		return 1
	}

	habits, err := s.store.ListHabits(ctx, uid)
	if err != nil {
		log.Printf("SessionService: failed to list habits for rollover of %s: %v", uid, err)
		return 1
	}
	if len(habits) == 0 {
		return 0
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, h := range habits {
		wg.Add(1)
		go func(h *habit.Habit) {
			defer wg.Done()
			if err := s.reconcileHabit(ctx, uid, h, between); err != nil {
				log.Printf("SessionService: rollover failed for habit %s: %v", h.ID, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(h)
	}
	wg.Wait()

	log.Printf("SessionService: rollover for %s covered %d day(s) across %d habit(s), %d failed", uid, len(between), len(habits), failed)
	return failed
}

func (s *SessionService) reconcileHabit(ctx context.Context, uid string, h *habit.Habit, between []string) error {
	updated := h.SuccessDates
	if h.Type == habit.TypeMaintain {
		for _, d := range between {
			// Skipped days count as automatic passes for maintained
			// habits; add-if-absent keeps re-runs from double-adding.
			if !h.HasSuccess(d) {
				updated = append(updated, d)
			}
		}
	}
	return s.habits.UpdateSuccessInfo(ctx, uid, h.ID, updated)
}

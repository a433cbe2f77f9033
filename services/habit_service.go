package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/dates"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/streak"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
)

var (
	// ErrHabitNotFound is returned when the referenced habit does not exist.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidHabit is returned for malformed create/update input.
	ErrInvalidHabit = errors.New("invalid habit input")
)

// HabitService owns habit documents and their dailyStatus sub-records.
// All streak/totalSuccessCount values it writes are derived from
// successDates; the per-day records and the aggregate set are kept in
// step by writing the per-day record first and the aggregate second.
type HabitService struct {
	store storage.Store
	clock clock.Clock
}

func NewHabitService(store storage.Store, clk clock.Clock) *HabitService {
	return &HabitService{store: store, clock: clk}
}

// CreateHabit validates the request and stores a fresh habit with no
// success history. The store assigns the document ID.
func (s *HabitService) CreateHabit(ctx context.Context, uid string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	t, err := habit.ParseType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}

	h := &habit.Habit{
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		Type:         t,
		SuccessDates: []string{},
	}

	id, err := s.store.CreateHabit(ctx, uid, h)
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	h.ID = id
	log.Printf("HabitService: habit %s created for user %s", id, uid)
	return h, nil
}

func (s *HabitService) GetHabit(ctx context.Context, uid, habitID string) (*habit.Habit, error) {
	h, err := s.store.GetHabit(ctx, uid, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *HabitService) GetHabits(ctx context.Context, uid string) ([]*habit.Habit, error) {
	habits, err := s.store.ListHabits(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// GetHabitsForDate returns every habit with its checked state on the
// given calendar date, the way the calendar screen consumes it. Checked
// state is membership in successDates, which is authoritative.
func (s *HabitService) GetHabitsForDate(ctx context.Context, uid, date string) ([]*habit.Display, error) {
	if !dates.Valid(date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidHabit, date)
	}

	habits, err := s.store.ListHabits(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list habits for date %s: %w", date, err)
	}

	displays := make([]*habit.Display, 0, len(habits))
	for _, h := range habits {
		displays = append(displays, &habit.Display{
			Habit:     h,
			IsChecked: h.HasSuccess(date),
		})
	}
	return displays, nil
}

func (s *HabitService) GetDailyStatuses(ctx context.Context, uid, habitID string) ([]*habit.DailyStatus, error) {
	statuses, err := s.store.ListDailyStatuses(ctx, uid, habitID)
	if err != nil {
		return nil, fmt.Errorf("list dailyStatus: %w", err)
	}
	return statuses, nil
}

// UpdateHabitType moves a habit between the forming and maintained
// buckets. The raw string is parsed here at the boundary; only the enum
// travels further.
func (s *HabitService) UpdateHabitType(ctx context.Context, uid, habitID, rawType string) error {
	t, err := habit.ParseType(rawType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}

	if err := s.store.UpdateHabitType(ctx, uid, habitID, t); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("update habit type: %w", err)
	}
	return nil
}

// DeleteHabit removes the habit and all of its dailyStatus records.
func (s *HabitService) DeleteHabit(ctx context.Context, uid, habitID string) error {
	if err := s.store.DeleteHabit(ctx, uid, habitID); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	log.Printf("HabitService: habit %s deleted for user %s", habitID, uid)
	return nil
}

// EnsureTodayStatus returns today's dailyStatus for the habit, creating
// it if absent: MAINTAIN habits start the day as done, FORMING habits as
// not done. Calling it again on the same day is a no-op.
func (s *HabitService) EnsureTodayStatus(ctx context.Context, uid string, h *habit.Habit) (*habit.DailyStatus, error) {
	today := s.clock.Today()

	st, err := s.store.GetDailyStatus(ctx, uid, h.ID, today)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("get today's status for habit %s: %w", h.ID, err)
	}

	st = &habit.DailyStatus{
		Date:      today,
		IsChecked: h.Type == habit.TypeMaintain,
	}
	if err := s.store.SetDailyStatus(ctx, uid, h.ID, st); err != nil {
		return nil, fmt.Errorf("initialize today's status for habit %s: %w", h.ID, err)
	}
	log.Printf("HabitService: initialized dailyStatus %s for habit %s (checked=%v)", today, h.ID, st.IsChecked)
	return st, nil
}

// InitializeTodayStatuses seeds today's dailyStatus for every habit that
// doesn't have one yet, in a single best-effort batch. Run whenever the
// habit list loads so every habit has a current-day record before
// display.
func (s *HabitService) InitializeTodayStatuses(ctx context.Context, uid string) error {
	today := s.clock.Today()

	habits, err := s.store.ListHabits(ctx, uid)
	if err != nil {
		return fmt.Errorf("list habits for init: %w", err)
	}

	var writes []storage.DailyStatusWrite
	for _, h := range habits {
		_, err := s.store.GetDailyStatus(ctx, uid, h.ID, today)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("HabitService: skipping init for habit %s: %v", h.ID, err)
			continue
		}
		writes = append(writes, storage.DailyStatusWrite{
			HabitID: h.ID,
			Status: &habit.DailyStatus{
				Date:      today,
				IsChecked: h.Type == habit.TypeMaintain,
			},
		})
	}

	if len(writes) == 0 {
		return nil
	}
	if err := s.store.BatchSetDailyStatuses(ctx, uid, writes); err != nil {
		return fmt.Errorf("batch init dailyStatus: %w", err)
	}
	log.Printf("HabitService: initialized %d dailyStatus records for user %s on %s", len(writes), uid, today)
	return nil
}

// SetChecked writes the dailyStatus for (habit, date) and folds the
// result into successDates: checked adds the date, unchecked removes it,
// both idempotently. Works for today and for historical edits from the
// date picker; the streak recompute is always anchored at today.
//
// The per-day write runs in a transaction so overlapping taps on the
// same checkbox serialize instead of losing updates. The aggregate write
// follows separately; if it fails the per-day record is still correct
// and the aggregates heal on the next recompute.
func (s *HabitService) SetChecked(ctx context.Context, uid, habitID, date string, isChecked bool) (*habit.Habit, error) {
	if !dates.Valid(date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidHabit, date)
	}

	err := s.store.TxSetDailyStatus(ctx, uid, habitID, date, func(cur *habit.DailyStatus) *habit.DailyStatus {
		return &habit.DailyStatus{Date: date, IsChecked: isChecked}
	})
	if err != nil {
		return nil, fmt.Errorf("set dailyStatus: %w", err)
	}

	h, err := s.store.GetHabit(ctx, uid, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit for aggregate update: %w", err)
	}

	updated := withDate(h.SuccessDates, date, isChecked)
	if err := s.UpdateSuccessInfo(ctx, uid, habitID, updated); err != nil {
		return nil, err
	}

	h.SuccessDates = updated
	h.TotalSuccessCount = streak.Total(updated)
	h.Streak = streak.Compute(updated, s.clock.Today())
	return h, nil
}

// ToggleChecked flips the dailyStatus for (habit, date) inside a
// transaction and returns the new checked state. A missing record
// toggles to checked, matching the original tap-to-check behavior.
func (s *HabitService) ToggleChecked(ctx context.Context, uid, habitID, date string) (bool, error) {
	if !dates.Valid(date) {
		return false, fmt.Errorf("%w: bad date %q", ErrInvalidHabit, date)
	}

	var checked bool
	err := s.store.TxSetDailyStatus(ctx, uid, habitID, date, func(cur *habit.DailyStatus) *habit.DailyStatus {
		checked = cur == nil || !cur.IsChecked
		return &habit.DailyStatus{Date: date, IsChecked: checked}
	})
	if err != nil {
		return false, fmt.Errorf("toggle dailyStatus: %w", err)
	}

	h, err := s.store.GetHabit(ctx, uid, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrHabitNotFound
		}
		return false, fmt.Errorf("get habit for aggregate update: %w", err)
	}

	if err := s.UpdateSuccessInfo(ctx, uid, habitID, withDate(h.SuccessDates, date, checked)); err != nil {
		return false, err
	}
	return checked, nil
}

// UpdateSuccessInfo persists successDates together with the streak and
// total derived from it, anchored at today. Safe to re-run: it computes
// everything from its input.
func (s *HabitService) UpdateSuccessInfo(ctx context.Context, uid, habitID string, successDates []string) error {
	total := streak.Total(successDates)
	current := streak.Compute(successDates, s.clock.Today())

	if err := s.store.UpdateHabitSuccess(ctx, uid, habitID, successDates, total, current); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("update success info for habit %s: %w", habitID, err)
	}
	log.Printf("HabitService: habit %s success info updated (total=%d streak=%d)", habitID, total, current)
	return nil
}

// withDate returns the success set with date present or absent.
// Adding an existing date and removing a missing one are both no-ops.
func withDate(successDates []string, date string, present bool) []string {
	out := make([]string, 0, len(successDates)+1)
	found := false
	for _, d := range successDates {
		if d == date {
			found = true
			if !present {
				continue
			}
		}
		out = append(out, d)
	}
	if present && !found {
		out = append(out, date)
	}
	return out
}

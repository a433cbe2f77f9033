package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

// Store is an in-memory storage.Store used by the test suite. It mirrors
// Firestore's shape (auto-assigned document IDs, per-document
// transactions, cascading deletes handled by the caller-visible API) so
// services behave the same against either backend.
type Store struct {
	mu     sync.Mutex
	users  map[string]*user.User
	habits map[string]map[string]*habit.Habit                // uid -> habitID -> habit
	status map[string]map[string]map[string]*habit.DailyStatus // uid -> habitID -> date -> status
}

func New() *Store {
	return &Store{
		users:  make(map[string]*user.User),
		habits: make(map[string]map[string]*habit.Habit),
		status: make(map[string]map[string]map[string]*habit.DailyStatus),
	}
}

var _ storage.Store = (*Store)(nil)

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

func copyHabit(h *habit.Habit) *habit.Habit {
	c := *h
	c.SuccessDates = append([]string(nil), h.SuccessDates...)
	return &c
}

func copyStatus(st *habit.DailyStatus) *habit.DailyStatus {
	c := *st
	return &c
}

func (s *Store) GetUser(ctx context.Context, uid string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Store) SetUser(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.UID] = copyUser(u)
	return nil
}

func (s *Store) UpdateLastUpdatedDate(ctx context.Context, uid, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[uid]
	if !ok {
		return storage.ErrNotFound
	}
	u.LastUpdatedDate = date
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, uid)
	delete(s.habits, uid)
	delete(s.status, uid)
	return nil
}

func (s *Store) CreateHabit(ctx context.Context, uid string, h *habit.Habit) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.habits[uid] == nil {
		s.habits[uid] = make(map[string]*habit.Habit)
	}
	h.ID = uuid.New().String()
	s.habits[uid][h.ID] = copyHabit(h)
	return h.ID, nil
}

func (s *Store) GetHabit(ctx context.Context, uid, habitID string) (*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[uid][habitID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyHabit(h), nil
}

func (s *Store) ListHabits(ctx context.Context, uid string) ([]*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*habit.Habit
	for _, h := range s.habits[uid] {
		out = append(out, copyHabit(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateHabitType(ctx context.Context, uid, habitID string, t habit.Type) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[uid][habitID]
	if !ok {
		return storage.ErrNotFound
	}
	h.Type = t
	return nil
}

func (s *Store) UpdateHabitSuccess(ctx context.Context, uid, habitID string, successDates []string, total, streakCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[uid][habitID]
	if !ok {
		return storage.ErrNotFound
	}
	h.SuccessDates = append([]string(nil), successDates...)
	h.TotalSuccessCount = total
	h.Streak = streakCount
	return nil
}

func (s *Store) DeleteHabit(ctx context.Context, uid, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.habits[uid], habitID)
	if s.status[uid] != nil {
		delete(s.status[uid], habitID)
	}
	return nil
}

func (s *Store) GetDailyStatus(ctx context.Context, uid, habitID, date string) (*habit.DailyStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.status[uid][habitID][date]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyStatus(st), nil
}

func (s *Store) ListDailyStatuses(ctx context.Context, uid, habitID string) ([]*habit.DailyStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*habit.DailyStatus
	for _, st := range s.status[uid][habitID] {
		out = append(out, copyStatus(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) setStatusLocked(uid, habitID string, st *habit.DailyStatus) {
	if s.status[uid] == nil {
		s.status[uid] = make(map[string]map[string]*habit.DailyStatus)
	}
	if s.status[uid][habitID] == nil {
		s.status[uid][habitID] = make(map[string]*habit.DailyStatus)
	}
	s.status[uid][habitID][st.Date] = copyStatus(st)
}

func (s *Store) SetDailyStatus(ctx context.Context, uid, habitID string, st *habit.DailyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setStatusLocked(uid, habitID, st)
	return nil
}

func (s *Store) TxSetDailyStatus(ctx context.Context, uid, habitID, date string, mutate func(cur *habit.DailyStatus) *habit.DailyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur *habit.DailyStatus
	if st, ok := s.status[uid][habitID][date]; ok {
		cur = copyStatus(st)
	}

	next := mutate(cur)
	if next == nil {
		return nil
	}
	s.setStatusLocked(uid, habitID, next)
	return nil
}

func (s *Store) BatchSetDailyStatuses(ctx context.Context, uid string, writes []storage.DailyStatusWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		s.setStatusLocked(uid, w.HabitID, w.Status)
	}
	return nil
}

package firestorestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/habit"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

const (
	usersCollection       = "users"
	habitsCollection      = "habits"
	dailyStatusCollection = "dailyStatus"
)

// Store persists all app data in Cloud Firestore under
// users/{uid}/habits/{habitId}/dailyStatus/{date}.
type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) userRef(uid string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(uid)
}

func (s *Store) habitsRef(uid string) *firestore.CollectionRef {
	return s.userRef(uid).Collection(habitsCollection)
}

func (s *Store) dailyStatusRef(uid, habitID string) *firestore.CollectionRef {
	return s.habitsRef(uid).Doc(habitID).Collection(dailyStatusCollection)
}

func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *Store) GetUser(ctx context.Context, uid string) (*user.User, error) {
	snap, err := s.userRef(uid).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}

	u := &user.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	u.UID = snap.Ref.ID
	return u, nil
}

func (s *Store) SetUser(ctx context.Context, u *user.User) error {
	if _, err := s.userRef(u.UID).Set(ctx, u); err != nil {
		return fmt.Errorf("set user %s: %w", u.UID, err)
	}
	return nil
}

func (s *Store) UpdateLastUpdatedDate(ctx context.Context, uid, date string) error {
	_, err := s.userRef(uid).Update(ctx, []firestore.Update{
		{Path: "lastUpdatedDate", Value: date},
	})
	if err != nil {
		if notFound(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("update lastUpdatedDate for %s: %w", uid, err)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, uid string) error {
	habits, err := s.ListHabits(ctx, uid)
	if err != nil {
		return err
	}
	for _, h := range habits {
		if err := s.DeleteHabit(ctx, uid, h.ID); err != nil {
			return err
		}
	}
	if _, err := s.userRef(uid).Delete(ctx); err != nil {
		return fmt.Errorf("delete user %s: %w", uid, err)
	}
	return nil
}

func (s *Store) CreateHabit(ctx context.Context, uid string, h *habit.Habit) (string, error) {
	ref := s.habitsRef(uid).NewDoc()
	h.ID = ref.ID
	if _, err := ref.Set(ctx, h); err != nil {
		return "", fmt.Errorf("create habit for %s: %w", uid, err)
	}
	return ref.ID, nil
}

func (s *Store) GetHabit(ctx context.Context, uid, habitID string) (*habit.Habit, error) {
	snap, err := s.habitsRef(uid).Doc(habitID).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get habit %s: %w", habitID, err)
	}

	h := &habit.Habit{}
	if err := snap.DataTo(h); err != nil {
		return nil, fmt.Errorf("decode habit %s: %w", habitID, err)
	}
	h.ID = snap.Ref.ID
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, uid string) ([]*habit.Habit, error) {
	iter := s.habitsRef(uid).Documents(ctx)
	defer iter.Stop()

	var habits []*habit.Habit
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list habits for %s: %w", uid, err)
		}

		h := &habit.Habit{}
		if err := snap.DataTo(h); err != nil {
			log.Printf("FirestoreStore: skipping undecodable habit %s: %v", snap.Ref.ID, err)
			continue
		}
		h.ID = snap.Ref.ID
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *Store) UpdateHabitType(ctx context.Context, uid, habitID string, t habit.Type) error {
	_, err := s.habitsRef(uid).Doc(habitID).Update(ctx, []firestore.Update{
		{Path: "type", Value: t},
	})
	if err != nil {
		if notFound(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("update habit type %s: %w", habitID, err)
	}
	return nil
}

func (s *Store) UpdateHabitSuccess(ctx context.Context, uid, habitID string, successDates []string, total, streakCount int) error {
	_, err := s.habitsRef(uid).Doc(habitID).Update(ctx, []firestore.Update{
		{Path: "successDates", Value: successDates},
		{Path: "totalSuccessCount", Value: total},
		{Path: "streak", Value: streakCount},
	})
	if err != nil {
		if notFound(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("update habit success info %s: %w", habitID, err)
	}
	return nil
}

func (s *Store) DeleteHabit(ctx context.Context, uid, habitID string) error {
	iter := s.dailyStatusRef(uid, habitID).Documents(ctx)
	defer iter.Stop()

	bw := s.client.BulkWriter(ctx)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list dailyStatus for habit %s: %w", habitID, err)
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return fmt.Errorf("queue dailyStatus delete for habit %s: %w", habitID, err)
		}
	}
	if _, err := bw.Delete(s.habitsRef(uid).Doc(habitID)); err != nil {
		return fmt.Errorf("queue habit delete %s: %w", habitID, err)
	}
	bw.End()
	return nil
}

func (s *Store) GetDailyStatus(ctx context.Context, uid, habitID, date string) (*habit.DailyStatus, error) {
	snap, err := s.dailyStatusRef(uid, habitID).Doc(date).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get dailyStatus %s/%s: %w", habitID, date, err)
	}

	st := &habit.DailyStatus{}
	if err := snap.DataTo(st); err != nil {
		return nil, fmt.Errorf("decode dailyStatus %s/%s: %w", habitID, date, err)
	}
	return st, nil
}

func (s *Store) ListDailyStatuses(ctx context.Context, uid, habitID string) ([]*habit.DailyStatus, error) {
	iter := s.dailyStatusRef(uid, habitID).OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var statuses []*habit.DailyStatus
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list dailyStatus for habit %s: %w", habitID, err)
		}

		st := &habit.DailyStatus{}
		if err := snap.DataTo(st); err != nil {
			log.Printf("FirestoreStore: skipping undecodable dailyStatus %s: %v", snap.Ref.ID, err)
			continue
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (s *Store) SetDailyStatus(ctx context.Context, uid, habitID string, st *habit.DailyStatus) error {
	if _, err := s.dailyStatusRef(uid, habitID).Doc(st.Date).Set(ctx, st); err != nil {
		return fmt.Errorf("set dailyStatus %s/%s: %w", habitID, st.Date, err)
	}
	return nil
}

func (s *Store) TxSetDailyStatus(ctx context.Context, uid, habitID, date string, mutate func(cur *habit.DailyStatus) *habit.DailyStatus) error {
	ref := s.dailyStatusRef(uid, habitID).Doc(date)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var cur *habit.DailyStatus
		snap, err := tx.Get(ref)
		if err != nil && !notFound(err) {
			return err
		}
		if err == nil {
			cur = &habit.DailyStatus{}
			if err := snap.DataTo(cur); err != nil {
				return err
			}
		}

		next := mutate(cur)
		if next == nil {
			return nil
		}
		return tx.Set(ref, next)
	})
	if err != nil {
		return fmt.Errorf("transact dailyStatus %s/%s: %w", habitID, date, err)
	}
	return nil
}

func (s *Store) BatchSetDailyStatuses(ctx context.Context, uid string, writes []storage.DailyStatusWrite) error {
	if len(writes) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	for _, w := range writes {
		ref := s.dailyStatusRef(uid, w.HabitID).Doc(w.Status.Date)
		if _, err := bw.Set(ref, w.Status); err != nil {
			return fmt.Errorf("queue dailyStatus write %s/%s: %w", w.HabitID, w.Status.Date, err)
		}
	}
	bw.End()
	return nil
}

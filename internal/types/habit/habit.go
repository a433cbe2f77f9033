package habit

import "fmt"

// Type separates the two habit buckets. FORMING habits default to "not
// done" each day until the user checks them; MAINTAIN habits default to
// "done" unless the user marks a failure.
type Type string

const (
	TypeForming  Type = "FORMING"
	TypeMaintain Type = "MAINTAIN"
)

// ParseType validates a raw type string at the API/store boundary. The
// enum is used end-to-end inside the app; free-text never travels past
// this function.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeForming:
		return TypeForming, nil
	case TypeMaintain:
		return TypeMaintain, nil
	default:
		return "", fmt.Errorf("invalid habit type %q", s)
	}
}

// Habit is one habit document under users/{uid}/habits/{id}.
//
// SuccessDates is the source of truth for all derived counts: Streak and
// TotalSuccessCount are caches recomputed from it after every mutation.
type Habit struct {
	ID                string   `json:"id" firestore:"id"`
	Name              string   `json:"name" firestore:"name"`
	Category          string   `json:"category" firestore:"category"`
	Type              Type     `json:"type" firestore:"type"`
	Streak            int      `json:"streak" firestore:"streak"`
	SuccessDates      []string `json:"successDates" firestore:"successDates"`
	TotalSuccessCount int      `json:"totalSuccessCount" firestore:"totalSuccessCount"`
}

// HasSuccess reports whether date is in the habit's success set.
func (h *Habit) HasSuccess(date string) bool {
	for _, d := range h.SuccessDates {
		if d == date {
			return true
		}
	}
	return false
}

// DailyStatus is one per-day record under
// users/{uid}/habits/{habitId}/dailyStatus/{date}. IsChecked must agree
// with membership of Date in the parent habit's SuccessDates; every
// write path updates the per-day record first and the aggregate second.
type DailyStatus struct {
	Date      string `json:"date" firestore:"date"`
	IsChecked bool   `json:"isChecked" firestore:"isChecked"`
}

// Display pairs a habit with its checked state for one calendar date,
// used by the calendar screen.
type Display struct {
	Habit     *Habit `json:"habit"`
	IsChecked bool   `json:"isChecked"`
}

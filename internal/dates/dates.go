package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical calendar-date format used everywhere in the app:
// habit success dates, dailyStatus document keys and the user's
// lastUpdatedDate are all stored as strings in this form.
const Layout = "2006-01-02"

// Parse converts a YYYY-MM-DD string into a time.Time at midnight UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a time.Time as a YYYY-MM-DD string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether s is a well-formed YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// AddDays returns the date n calendar days after d.
func AddDays(d string, n int) (string, error) {
	t, err := Parse(d)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// Before reports whether a is strictly earlier than b. Lexicographic
// comparison is correct for zero-padded YYYY-MM-DD strings, but both
// inputs must parse so malformed data is caught instead of miscompared.
func Before(a, b string) (bool, error) {
	ta, err := Parse(a)
	if err != nil {
		return false, err
	}
	tb, err := Parse(b)
	if err != nil {
		return false, err
	}
	return ta.Before(tb), nil
}

// DaysBetween returns the whole number of calendar days from `from` to
// `to`. Positive when `to` is later, negative when earlier.
func DaysBetween(from, to string) (int, error) {
	tf, err := Parse(from)
	if err != nil {
		return 0, err
	}
	tt, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(tt.Sub(tf).Hours() / 24), nil
}

// Between returns every date strictly between `from` and `to`, in
// ascending order. Both endpoints are excluded: the rollover backfill
// handles the gap days only, since `from` was processed in the previous
// session and `to` is covered by the daily-status initializer. Returns
// an empty slice when the dates are adjacent, equal, or reversed.
func Between(from, to string) ([]string, error) {
	tf, err := Parse(from)
	if err != nil {
		return nil, err
	}
	tt, err := Parse(to)
	if err != nil {
		return nil, err
	}

	var out []string
	for d := tf.AddDate(0, 0, 1); d.Before(tt); d = d.AddDate(0, 0, 1) {
		out = append(out, Format(d))
	}
	return out, nil
}

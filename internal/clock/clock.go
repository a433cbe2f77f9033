package clock

import (
	"log"
	"os"
	"time"

	"github.com/tesabel/mobileAppDevTeam25/internal/dates"
)

// Clock supplies "today" as a YYYY-MM-DD string. Every component that
// needs the current date takes a Clock instead of reading the wall clock
// directly, so the reconciler and streak math can be exercised against
// any fixed date.
type Clock interface {
	Today() string
}

// WallClock reads the real date in the server's local timezone.
type WallClock struct{}

func (WallClock) Today() string {
	return dates.Format(time.Now())
}

// FixedClock always reports the same date. Used in tests and when the
// app runs in test-date mode.
type FixedClock string

func (c FixedClock) Today() string {
	return string(c)
}

// FromEnv builds the process-wide clock. If TEST_DATE holds a valid
// YYYY-MM-DD value the returned clock is pinned to it; otherwise the
// wall clock is used.
func FromEnv() Clock {
	if d := os.Getenv("TEST_DATE"); d != "" {
		if !dates.Valid(d) {
			log.Printf("Clock: ignoring malformed TEST_DATE %q, using wall clock", d)
			return WallClock{}
		}
		log.Printf("Clock: running in test-date mode, today pinned to %s", d)
		return FixedClock(d)
	}
	return WallClock{}
}

// Mode names the active date source for the session greeting.
func Mode(c Clock) string {
	if _, ok := c.(FixedClock); ok {
		return "test-date"
	}
	return "wall-clock"
}

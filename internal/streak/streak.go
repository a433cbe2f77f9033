package streak

import (
	"github.com/tesabel/mobileAppDevTeam25/internal/dates"
)

// Compute returns the current consecutive-success streak for a habit:
// the length of the unbroken run of success dates ending at today.
//
// Today itself is optional — a user who simply hasn't checked in yet
// today keeps their streak — but any earlier missing day ends the run.
// Dates that fail to parse are treated as absent.
func Compute(successDates []string, today string) int {
	if len(successDates) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(successDates))
	for _, d := range successDates {
		set[d] = struct{}{}
	}

	anchor, err := dates.Parse(today)
	if err != nil {
		return 0
	}

	count := 0
	if _, ok := set[today]; ok {
		count = 1
	}

	for d := anchor.AddDate(0, 0, -1); ; d = d.AddDate(0, 0, -1) {
		if _, ok := set[dates.Format(d)]; !ok {
			break
		}
		count++
	}
	return count
}

// Total returns the habit's total success-day count. successDates is
// authoritative, so the total is simply the number of distinct entries.
func Total(successDates []string) int {
	seen := make(map[string]struct{}, len(successDates))
	for _, d := range successDates {
		seen[d] = struct{}{}
	}
	return len(seen)
}

package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const today = "2024-12-09"

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, 0, Compute(nil, today))
	assert.Equal(t, 0, Compute([]string{}, today))
}

func TestComputeTodayOnly(t *testing.T) {
	assert.Equal(t, 1, Compute([]string{"2024-12-09"}, today))
}

func TestComputeTrailingRun(t *testing.T) {
	assert.Equal(t, 3, Compute([]string{"2024-12-09", "2024-12-08", "2024-12-07"}, today))
}

func TestComputeTodayUnmarkedKeepsStreak(t *testing.T) {
	// The user just hasn't checked in yet today; the run up to
	// yesterday still counts.
	assert.Equal(t, 2, Compute([]string{"2024-12-08", "2024-12-07"}, today))
}

func TestComputeGapBreaksChain(t *testing.T) {
	// 12-08 is missing, so 12-07 can't contribute.
	assert.Equal(t, 0, Compute([]string{"2024-12-07"}, today))

	// Same with today present: the run stops at the gap.
	assert.Equal(t, 2, Compute([]string{"2024-12-09", "2024-12-08", "2024-12-06", "2024-12-05"}, today))
}

func TestComputeIgnoresOrderAndDuplicates(t *testing.T) {
	assert.Equal(t, 3, Compute([]string{"2024-12-07", "2024-12-09", "2024-12-08", "2024-12-08"}, today))
}

func TestComputeFutureDatesIrrelevant(t *testing.T) {
	assert.Equal(t, 1, Compute([]string{"2024-12-09", "2024-12-11"}, today))
}

func TestComputeBadInput(t *testing.T) {
	assert.Equal(t, 0, Compute([]string{"2024-12-09"}, "garbage"))
	assert.Equal(t, 1, Compute([]string{"2024-12-09", "garbage"}, today))
}

func TestComputeBoundedBySetSize(t *testing.T) {
	sets := [][]string{
		{"2024-12-09"},
		{"2024-12-09", "2024-12-08"},
		{"2024-12-01", "2024-12-04", "2024-12-08", "2024-12-09"},
		{"2023-01-01"},
	}
	for _, set := range sets {
		got := Compute(set, today)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, len(set))
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0, Total(nil))
	assert.Equal(t, 3, Total([]string{"2024-12-01", "2024-12-02", "2024-12-03"}))
	assert.Equal(t, 2, Total([]string{"2024-12-01", "2024-12-01", "2024-12-02"}))
}

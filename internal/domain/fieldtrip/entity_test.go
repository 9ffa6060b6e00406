package fieldtrip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWindow(t *testing.T) {
	start, end := NormalizeWindow(
		time.Date(2026, 3, 10, 14, 25, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 8, 5, 0, 0, time.UTC),
	)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 12, 23, 59, 59, 999000000, time.UTC), end)
}

func TestCoversIsInclusiveOnBothEnds(t *testing.T) {
	start, end := NormalizeWindow(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	)
	trip := FieldTrip{StartDate: start, EndDate: end}

	assert.True(t, trip.Covers(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, trip.Covers(time.Date(2026, 3, 12, 23, 59, 59, 0, time.UTC)))
	assert.False(t, trip.Covers(time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, trip.Covers(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)))
}

func TestDaysRemaining(t *testing.T) {
	start, end := NormalizeWindow(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	)
	trip := FieldTrip{StartDate: start, EndDate: end}

	assert.Equal(t, 3, trip.DaysRemaining(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, trip.DaysRemaining(time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, trip.DaysRemaining(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)))
}

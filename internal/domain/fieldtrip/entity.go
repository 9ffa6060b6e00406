package fieldtrip

import (
	"time"
)

// SentinelLocation is stored as the taken location of attendance records
// auto-marked for employees on an active field trip.
const SentinelLocation = "Off-Campus (Field Trip)"

// FieldTrip is an approved off-campus window for one employee. The window
// is inclusive on both ends: StartDate is normalized to 00:00 and EndDate
// to 23:59:59.999 so date comparisons cover the whole last day.
type FieldTrip struct {
	ID             string
	EmployeeNumber string
	StartDate      time.Time
	EndDate        time.Time
	Description    *string
	IsActive       bool
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Covers reports whether the trip window contains the given instant.
func (f FieldTrip) Covers(t time.Time) bool {
	return !t.Before(f.StartDate) && !t.After(f.EndDate)
}

// DaysRemaining counts whole days from asOf until the trip window closes,
// zero when the window has passed.
func (f FieldTrip) DaysRemaining(asOf time.Time) int {
	if asOf.After(f.EndDate) {
		return 0
	}
	return int(f.EndDate.Sub(asOf).Hours()/24) + 1
}

// NormalizeWindow expands a pair of dates to the inclusive trip window:
// start of day for the first, end of day for the second.
func NormalizeWindow(start, end time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, time.UTC)
	return s, e
}

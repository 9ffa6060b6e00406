package attendance

import "time"

const (
	fnStartMinutes = 9*60 + 30  // 09:30
	afStartMinutes = 13 * 60    // 13:00
	afEndMinutes   = 17*60 + 30 // 17:30

	// FullDayMinimum is the worked duration required for a forenoon check-in
	// to count as a full day.
	FullDayMinimum = 6 * time.Hour
)

// ClassifySession maps a check-in clock time (local wall clock) to its
// half-day session. The boundary policy is deliberately asymmetric: anything
// before 09:30 still counts as forenoon, anything after 17:30 as afternoon.
func ClassifySession(t time.Time) Session {
	minutes := t.Hour()*60 + t.Minute()

	if minutes >= fnStartMinutes && minutes < afStartMinutes {
		return SessionFN
	}
	if minutes >= afStartMinutes && minutes <= afEndMinutes {
		return SessionAF
	}
	if minutes < fnStartMinutes {
		return SessionFN
	}
	return SessionAF
}

// ClassifyDayType decides full vs half day for a completed record. Returns
// nil while the record is still open (no checkout). A full day requires a
// forenoon session and at least six hours worked; everything else is a half
// day, regardless of duration.
func ClassifyDayType(checkin time.Time, checkout *time.Time, session Session) *DayType {
	if checkout == nil {
		return nil
	}

	if session == SessionFN && checkout.Sub(checkin) >= FullDayMinimum {
		t := FullDay
		return &t
	}

	t := HalfDay
	return &t
}

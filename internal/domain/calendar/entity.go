package calendar

import (
	"time"
)

// Entry is one calendar day. Weekends are materialized at seeding time so
// working-day math is a single aggregate query.
type Entry struct {
	Date        time.Time
	IsHoliday   bool
	IsWeekend   bool
	Description *string
}

// IsWorkingDay reports whether the day counts toward working-day totals.
func (e Entry) IsWorkingDay() bool {
	return !e.IsHoliday && !e.IsWeekend
}

type EntryResponse struct {
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"is_holiday"`
	IsWeekend   bool    `json:"is_weekend"`
	Description *string `json:"description"`
}

func (e Entry) ToResponse() EntryResponse {
	return EntryResponse{
		Date:        e.Date.Format("2006-01-02"),
		IsHoliday:   e.IsHoliday,
		IsWeekend:   e.IsWeekend,
		Description: e.Description,
	}
}

// MonthSummary groups a month of entries with holiday/weekend totals.
type MonthSummary struct {
	Month    int             `json:"month"`
	Entries  []EntryResponse `json:"entries"`
	Holidays int             `json:"holidays"`
	Weekends int             `json:"weekends"`
}

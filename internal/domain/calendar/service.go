package calendar

import (
	"context"
)

// Service defines read operations over the calendar store.
type Service interface {
	// Entries returns a year (or one month of it) grouped per month with
	// holiday and weekend totals.
	Entries(ctx context.Context, year int, month *int) ([]MonthSummary, error)

	// Holidays returns the holiday list of a year.
	Holidays(ctx context.Context, year int) ([]EntryResponse, error)

	// WorkingDays counts working days in a month, clamped to today when the
	// month extends into the future. Returns 0 for months that have not
	// started.
	WorkingDays(ctx context.Context, year, month int) (int, error)
}

package calendar

import (
	"context"
	"time"
)

// Repository defines data access methods for the calendar store.
type Repository interface {
	// ListRange retrieves entries inside [start, end], ordered by date.
	ListRange(ctx context.Context, start, end time.Time) ([]Entry, error)

	// ListHolidays retrieves the holiday entries of a year.
	ListHolidays(ctx context.Context, year int) ([]Entry, error)

	// CountNonWorking counts holiday-or-weekend days inside [start, end].
	CountNonWorking(ctx context.Context, start, end time.Time) (int, error)

	// Upsert inserts or updates one entry keyed by date.
	Upsert(ctx context.Context, entry Entry) error
}

package attendance

import (
	"context"
)

// Service defines business logic for attendance operations
type Service interface {
	// CheckIn processes a check-in or same-day re-check-in.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, bool, error)

	// CheckOut closes today's open record and classifies the day type.
	CheckOut(ctx context.Context, employeeNumber string) (AttendanceResponse, error)

	// Today retrieves today's record with the auto-completion view applied.
	Today(ctx context.Context, employeeNumber string) (AttendanceResponse, error)

	// Calendar retrieves a month (or whole year when month is nil) of
	// records plus range statistics.
	Calendar(ctx context.Context, employeeNumber string, year int, month *int) (CalendarResponse, error)
}

package fieldtrip

import (
	"context"
	"time"
)

// Service defines business logic for field trip management.
type Service interface {
	// Replace atomically replaces the active trip set for an employee. An
	// empty trip list clears all active trips.
	Replace(ctx context.Context, req SetFieldTripsRequest, actor string) ([]FieldTripResponse, error)

	// ActiveByEmployee lists the employee's active trips.
	ActiveByEmployee(ctx context.Context, employeeNumber string) ([]FieldTripResponse, error)

	// ActiveByUsername resolves a username through the staff directory and
	// lists that employee's active trips.
	ActiveByUsername(ctx context.Context, username string) ([]FieldTripResponse, error)

	// ActiveOn lists every running trip on a date with days remaining.
	ActiveOn(ctx context.Context, date time.Time) ([]ActiveTripResponse, error)

	// UpdateTrip changes the window or description of one trip by key.
	UpdateTrip(ctx context.Context, id string, req UpdateFieldTripRequest) (FieldTripResponse, error)

	// Deactivate deactivates a single trip by key.
	Deactivate(ctx context.Context, id string) error

	// TripCovering reports the active trip (if any) containing the given
	// instant for an employee.
	TripCovering(ctx context.Context, employeeNumber string, at time.Time) (*FieldTrip, error)

	// SweepExpired deactivates trips whose window has passed, returning the
	// trips that were closed.
	SweepExpired(ctx context.Context, asOf time.Time) ([]FieldTripResponse, error)

	// AutoMarkAttendance upserts synthetic full-day attendance for every
	// employee on an active trip at asOf.
	AutoMarkAttendance(ctx context.Context, asOf time.Time) (AutoMarkResult, error)
}

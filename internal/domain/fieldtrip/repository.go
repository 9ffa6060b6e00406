package fieldtrip

import (
	"context"
	"time"
)

// Repository defines data access methods for field trips.
type Repository interface {
	// Create creates a new field trip window.
	Create(ctx context.Context, trip FieldTrip) (FieldTrip, error)

	// GetByID retrieves one trip by its key. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*FieldTrip, error)

	// Update overwrites the window and description of one trip.
	Update(ctx context.Context, trip FieldTrip) (FieldTrip, error)

	// DeactivateByID deactivates a single trip.
	DeactivateByID(ctx context.Context, id string) error

	// DeactivateByEmployee deactivates every active trip for one employee.
	// Used by the transactional replace in SetFieldTrips.
	DeactivateByEmployee(ctx context.Context, employeeNumber string) error

	// ListActiveByEmployee retrieves the active trips for one employee,
	// ordered by start date.
	ListActiveByEmployee(ctx context.Context, employeeNumber string) ([]FieldTrip, error)

	// ListActiveOn retrieves all active trips whose window contains the
	// given instant.
	ListActiveOn(ctx context.Context, at time.Time) ([]FieldTrip, error)

	// GetActiveCovering retrieves the active trip for an employee whose
	// window contains the given instant. Returns (nil, nil) when none does.
	GetActiveCovering(ctx context.Context, employeeNumber string, at time.Time) (*FieldTrip, error)

	// DeactivateEnded deactivates every active trip whose window ended
	// before the given instant, returning the trips that were closed.
	DeactivateEnded(ctx context.Context, before time.Time) ([]FieldTrip, error)
}

package workflow

import (
	"context"
	"time"
)

// RequestRepository persists the HR↔PI data request state machine.
type RequestRepository interface {
	// Upsert inserts the request or resets an existing (pi, month, year)
	// row to PENDING with fresh message and request time, clearing
	// submission metadata.
	Upsert(ctx context.Context, req DataRequest) (DataRequest, error)

	// Get retrieves one request by its natural key. Returns (nil, nil)
	// when absent.
	Get(ctx context.Context, piUsername string, month, year int) (*DataRequest, error)

	// Update overwrites status and submission metadata.
	Update(ctx context.Context, req DataRequest) (DataRequest, error)

	// ListPendingByPI retrieves the PENDING requests for one PI.
	ListPendingByPI(ctx context.Context, piUsername string) ([]DataRequest, error)

	// ListByPeriod retrieves all requests of one month/year.
	ListByPeriod(ctx context.Context, month, year int) ([]DataRequest, error)
}

// AdjustmentRepository persists manual day adjustments.
type AdjustmentRepository interface {
	// Create stores one adjustment.
	Create(ctx context.Context, adj ModifiedAttendance) (ModifiedAttendance, error)

	// ListByEmployee retrieves an employee's adjustments, newest first.
	ListByEmployee(ctx context.Context, employeeNumber string) ([]ModifiedAttendance, error)

	// ListByEmployeesAndRange retrieves adjustments for a set of employees
	// whose date falls inside [start, end].
	ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]ModifiedAttendance, error)

	// Delete removes one adjustment by id.
	Delete(ctx context.Context, id int64) error
}

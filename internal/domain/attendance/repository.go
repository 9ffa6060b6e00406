package attendance

import (
	"context"
	"time"
)

// Repository defines data access methods for attendance records.
type Repository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for specific employee on a
	// specific date. Returns (nil, nil) when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*Attendance, error)

	// Update overwrites the mutable fields of the record identified by
	// (employeeNumber, date).
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByEmployeeAndRange retrieves records for one employee across a
	// date range, ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeNumber string, start, end time.Time) ([]Attendance, error)

	// ListByEmployeesAndRange retrieves records for a set of employees
	// across a date range.
	ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]Attendance, error)

	// ListRecent retrieves the newest records for one employee.
	ListRecent(ctx context.Context, employeeNumber string, limit int) ([]Attendance, error)

	// ListOpenByDate retrieves records for a date that have a check-in but
	// no checkout yet. Used by the daily auto-completion sweep.
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// MarkFullDay sets attendanceType=FULL_DAY for the record identified by
	// (employeeNumber, date), leaving checkout untouched.
	MarkFullDay(ctx context.Context, employeeNumber string, date time.Time) error
}

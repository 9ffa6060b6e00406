package workflow

import (
	"time"
)

// RequestStatus is the lifecycle of one HR data request toward a PI.
// Requests only move forward; a fresh HR request resets the row to pending.
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusSubmitted  RequestStatus = "SUBMITTED"
	StatusDownloaded RequestStatus = "DOWNLOADED"
)

// DataRequest is keyed (piUsername, month, year). Submission metadata is
// populated on the PENDING→SUBMITTED transition and discarded when HR
// re-requests the same period.
type DataRequest struct {
	ID                   int64
	PIUsername           string
	Month                int
	Year                 int
	Status               RequestStatus
	Message              *string
	RequestedAt          time.Time
	SubmittedAt          *time.Time
	DownloadedAt         *time.Time
	SubmittedCount       int
	TotalCount           int
	SubmittedEmployeeIDs []string
	IsPartial            bool
}

// AdjustmentStatus marks a manual day adjustment made by a PI.
type AdjustmentStatus string

const (
	AdjustmentAdded   AdjustmentStatus = "ADDED"
	AdjustmentRemoved AdjustmentStatus = "REMOVED"
)

// ModifiedAttendance is one manual day adjustment for an employee,
// credited or debited in report totals.
type ModifiedAttendance struct {
	ID               int64
	EmployeeNumber   string
	Date             time.Time
	Status           AdjustmentStatus
	Comment          *string
	PIEmployeeNumber string
	CreatedAt        time.Time
}

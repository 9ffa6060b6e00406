package workflow

import (
	"context"

	"github.com/sumitRND/PresenceBackend/internal/domain/report"
)

// Service drives the HR↔PI request/submission state machine.
type Service interface {
	// Request upserts PENDING requests for each targeted PI.
	Request(ctx context.Context, req RequestDataRequest) ([]DataRequestResponse, error)

	// Submit transitions the PI's PENDING request to SUBMITTED, storing the
	// submitted selection and its statistics.
	Submit(ctx context.Context, piUsername string, req SubmitDataRequest) (DataRequestResponse, error)

	// Download aggregates the submitted rows of the targeted PIs, marking
	// each qualifying request DOWNLOADED. Fails with ErrNothingSubmitted
	// when no targeted PI has submitted.
	Download(ctx context.Context, piUsernames []string, month, year int) (report.MonthReport, error)

	// Notifications lists the PI's PENDING requests.
	Notifications(ctx context.Context, piUsername string) ([]DataRequestResponse, error)

	// SubmissionStatus builds the per-PI status map for one period.
	SubmissionStatus(ctx context.Context, month, year int) ([]SubmissionStatusEntry, error)

	// ModifyAttendance records a manual day adjustment made by a PI.
	ModifyAttendance(ctx context.Context, piUsername string, req ModifyAttendanceRequest) (ModifiedAttendanceResponse, error)

	// ModifiedAttendanceFor lists an employee's adjustments.
	ModifiedAttendanceFor(ctx context.Context, employeeNumber string) ([]ModifiedAttendanceResponse, error)

	// DeleteModifiedAttendance removes one adjustment by id.
	DeleteModifiedAttendance(ctx context.Context, id int64) error
}

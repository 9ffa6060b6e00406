package response

import (
	"errors"
	"net/http"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
	"github.com/sumitRND/PresenceBackend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrAssertionExpired):
		Unauthorized(w, "SSO assertion has expired")
	case errors.Is(err, auth.ErrADUnavailable):
		ServiceUnavailable(w, "Authentication service is unavailable")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCompleted):
		Conflict(w, "You have already completed your attendance for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out for today")
	case errors.Is(err, attendance.ErrNoCheckIn):
		NotFound(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "No attendance found for today")

	// Field trip domain errors
	case errors.Is(err, fieldtrip.ErrFieldTripNotFound):
		NotFound(w, "Field trip not found")
	case errors.Is(err, fieldtrip.ErrInvalidWindow):
		BadRequest(w, "Field trip end date must not be before start date", nil)

	// Workflow domain errors
	case errors.Is(err, workflow.ErrNoActiveRequest):
		NotFound(w, "No active data request for this period")
	case errors.Is(err, workflow.ErrNothingSubmitted):
		NotFound(w, "No submitted data available for this period")
	case errors.Is(err, workflow.ErrEmptySelection):
		BadRequest(w, "Employee selection must not be empty", nil)
	case errors.Is(err, workflow.ErrRequestNotFound):
		NotFound(w, "Data request not found")
	case errors.Is(err, workflow.ErrAdjustmentNotFound):
		NotFound(w, "Modified attendance entry not found")

	// Staff directory errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrPINotFound):
		NotFound(w, "Project investigator not found")

	// Calendar errors
	case errors.Is(err, calendar.ErrInvalidYear), errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Report errors
	case errors.Is(err, report.ErrNoEmployees):
		BadRequest(w, "No employees to report on", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

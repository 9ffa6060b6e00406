package auth

import (
	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  staff.Staff `json:"user"`
}

type HRLoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SSOAssertion is the JSON payload of the X-SSO-User header. Timestamp is
// Unix milliseconds; assertions older than five minutes are rejected.
type SSOAssertion struct {
	Username     string   `json:"username"`
	ProjectCodes []string `json:"projectCodes"`
	Timestamp    int64    `json:"timestamp"`
}

type ProfileResponse struct {
	User             staff.Staff                     `json:"user"`
	RecentAttendance []attendance.AttendanceResponse `json:"recent_attendance"`
}

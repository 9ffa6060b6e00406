package workflow

import (
	"github.com/sumitRND/PresenceBackend/internal/pkg/validator"
)

type RequestDataRequest struct {
	PIUsernames []string `json:"pi_usernames"`
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	Message     *string  `json:"message"`
}

func (r *RequestDataRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PIUsernames) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "pi_usernames",
			Message: "at least one PI username is required",
		})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitDataRequest struct {
	Month           int      `json:"month"`
	Year            int      `json:"year"`
	SendAll         bool     `json:"send_all"`
	EmployeeNumbers []string `json:"employee_numbers"`
}

func (r *SubmitDataRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if !r.SendAll && len(r.EmployeeNumbers) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_numbers",
			Message: "employee_numbers is required when send_all is false",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ModifyAttendanceRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	Comment        *string `json:"comment"`
}

func (r *ModifyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if !validator.IsInSlice(r.Status, []string{string(AdjustmentAdded), string(AdjustmentRemoved)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ADDED or REMOVED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DataRequestResponse struct {
	PIUsername           string   `json:"pi_username"`
	Month                int      `json:"month"`
	Year                 int      `json:"year"`
	Status               string   `json:"status"`
	Message              *string  `json:"message"`
	RequestedAt          string   `json:"requested_at"`
	SubmittedAt          *string  `json:"submitted_at"`
	DownloadedAt         *string  `json:"downloaded_at"`
	SubmittedCount       int      `json:"submitted_count"`
	TotalCount           int      `json:"total_count"`
	SubmittedEmployeeIDs []string `json:"submitted_employee_ids,omitempty"`
	IsPartial            bool     `json:"is_partial"`
}

func (d DataRequest) ToResponse() DataRequestResponse {
	resp := DataRequestResponse{
		PIUsername:           d.PIUsername,
		Month:                d.Month,
		Year:                 d.Year,
		Status:               string(d.Status),
		Message:              d.Message,
		RequestedAt:          d.RequestedAt.Format("2006-01-02 15:04:05"),
		SubmittedCount:       d.SubmittedCount,
		TotalCount:           d.TotalCount,
		SubmittedEmployeeIDs: d.SubmittedEmployeeIDs,
		IsPartial:            d.IsPartial,
	}
	if d.SubmittedAt != nil {
		s := d.SubmittedAt.Format("2006-01-02 15:04:05")
		resp.SubmittedAt = &s
	}
	if d.DownloadedAt != nil {
		s := d.DownloadedAt.Format("2006-01-02 15:04:05")
		resp.DownloadedAt = &s
	}
	return resp
}

type ModifiedAttendanceResponse struct {
	ID               int64   `json:"id"`
	EmployeeNumber   string  `json:"employee_number"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	Comment          *string `json:"comment"`
	PIEmployeeNumber string  `json:"pi_employee_number"`
}

func (m ModifiedAttendance) ToResponse() ModifiedAttendanceResponse {
	return ModifiedAttendanceResponse{
		ID:               m.ID,
		EmployeeNumber:   m.EmployeeNumber,
		Date:             m.Date.Format("2006-01-02"),
		Status:           string(m.Status),
		Comment:          m.Comment,
		PIEmployeeNumber: m.PIEmployeeNumber,
	}
}

// SubmissionStatusEntry is one row of the HR dashboard status map.
type SubmissionStatusEntry struct {
	PIUsername     string  `json:"pi_username"`
	Status         string  `json:"status"` // none | requested | pending | complete
	SubmittedCount int     `json:"submitted_count"`
	TotalCount     int     `json:"total_count"`
	IsPartial      bool    `json:"is_partial"`
	SubmittedAt    *string `json:"submitted_at"`
}

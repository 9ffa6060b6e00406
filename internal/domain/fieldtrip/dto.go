package fieldtrip

import (
	"strconv"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/pkg/validator"
)

type TripInput struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description *string `json:"description"`
}

func (t TripInput) validate(index int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(t.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "field_trips",
			Message: "start_date must be YYYY-MM-DD at index " + strconv.Itoa(index),
		})
		return errs
	}
	if !validator.IsValidDate(t.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "field_trips",
			Message: "end_date must be YYYY-MM-DD at index " + strconv.Itoa(index),
		})
		return errs
	}

	start, _ := time.Parse("2006-01-02", t.StartDate)
	end, _ := time.Parse("2006-01-02", t.EndDate)
	if end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "field_trips",
			Message: "end_date is before start_date at index " + strconv.Itoa(index),
		})
	}

	return errs
}

type SetFieldTripsRequest struct {
	EmployeeNumber string      `json:"employee_number"`
	FieldTrips     []TripInput `json:"field_trips"`
}

func (r *SetFieldTripsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	}

	for i, trip := range r.FieldTrips {
		errs = append(errs, trip.validate(i)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateFieldTripRequest struct {
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

func (r *UpdateFieldTripRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil && !validator.IsValidDate(*r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if r.EndDate != nil && !validator.IsValidDate(*r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FieldTripResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Description    *string `json:"description"`
	IsActive       bool    `json:"is_active"`
	CreatedBy      *string `json:"created_by,omitempty"`
}

func (f FieldTrip) ToResponse() FieldTripResponse {
	return FieldTripResponse{
		ID:             f.ID,
		EmployeeNumber: f.EmployeeNumber,
		StartDate:      f.StartDate.Format("2006-01-02"),
		EndDate:        f.EndDate.Format("2006-01-02"),
		Description:    f.Description,
		IsActive:       f.IsActive,
		CreatedBy:      f.CreatedBy,
	}
}

// ActiveTripResponse is the dashboard view of a running trip.
type ActiveTripResponse struct {
	FieldTripResponse
	DaysRemaining int `json:"days_remaining"`
}

// AutoMarkResult reports one auto-processing sweep: which employees got a
// synthetic record created and which already had one for the day.
type AutoMarkResult struct {
	Marked        []string `json:"marked"`
	AlreadyMarked []string `json:"already_marked"`
}

package attendance

import (
	"time"

	"github.com/sumitRND/PresenceBackend/internal/pkg/validator"
)

type CheckInRequest struct {
	Username      string       `json:"username"`
	Location      *string      `json:"location"`
	Latitude      *float64     `json:"latitude"`
	Longitude     *float64     `json:"longitude"`
	LocationType  LocationType `json:"location_type"`
	PhotoURL      *string      `json:"photo_url"`
	AudioURL      *string      `json:"audio_url"`
	AudioDuration *int         `json:"audio_duration"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.LocationType != "" && r.LocationType != LocationCampus && r.LocationType != LocationFieldTrip {
		errs = append(errs, validator.ValidationError{
			Field:   "location_type",
			Message: "location_type must be CAMPUS or FIELDTRIP",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeNumber string `json:"employee_number"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AttendanceResponse is the wire shape of a record. AutoCompleted marks
// records presented as FULL_DAY by the late-evening read patch or the daily
// sweep rather than an actual checkout.
type AttendanceResponse struct {
	EmployeeNumber  string       `json:"employee_number"`
	Date            string       `json:"date"`
	CheckinTime     *string      `json:"checkin_time"`
	CheckoutTime    *string      `json:"checkout_time"`
	SessionType     Session      `json:"session_type"`
	AttendanceType  *DayType     `json:"attendance_type"`
	LocationType    LocationType `json:"location_type"`
	TakenLocation   *string      `json:"taken_location"`
	Latitude        *float64     `json:"latitude"`
	Longitude       *float64     `json:"longitude"`
	LocationAddress *string      `json:"location_address"`
	County          *string      `json:"county"`
	State           *string      `json:"state"`
	Postcode        *string      `json:"postcode"`
	PhotoURL        *string      `json:"photo_url"`
	AudioURL        *string      `json:"audio_url"`
	AudioDuration   *int         `json:"audio_duration"`
	AutoCompleted   bool         `json:"auto_completed,omitempty"`
}

// CalendarStatistics summarizes a fetched range. TotalRecords counts raw
// records (the UI shows record counts, keyed totalDays on the wire); the
// report aggregator computes the separate weighted total.
type CalendarStatistics struct {
	TotalRecords  int  `json:"totalDays"`
	TotalFullDays int  `json:"totalFullDays"`
	TotalHalfDays int  `json:"totalHalfDays"`
	NotCheckedOut int  `json:"notCheckedOut"`
	Year          int  `json:"year"`
	Month         *int `json:"month"`
}

type CalendarResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Statistics  CalendarStatistics   `json:"statistics"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts an Attendance entity to its wire shape.
func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		EmployeeNumber:  a.EmployeeNumber,
		Date:            a.Date.Format("2006-01-02"),
		CheckinTime:     timePtrToString(a.CheckinTime),
		CheckoutTime:    timePtrToString(a.CheckoutTime),
		SessionType:     a.SessionType,
		AttendanceType:  a.AttendanceType,
		LocationType:    a.LocationType,
		TakenLocation:   a.TakenLocation,
		Latitude:        a.Latitude,
		Longitude:       a.Longitude,
		LocationAddress: a.LocationAddress,
		County:          a.County,
		State:           a.State,
		Postcode:        a.Postcode,
		PhotoURL:        a.PhotoURL,
		AudioURL:        a.AudioURL,
		AudioDuration:   a.AudioDuration,
	}
}

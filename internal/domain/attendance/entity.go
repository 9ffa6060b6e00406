package attendance

import (
	"time"
)

type Session string

const (
	SessionFN Session = "FN"
	SessionAF Session = "AF"
)

type DayType string

const (
	FullDay DayType = "FULL_DAY"
	HalfDay DayType = "HALF_DAY"
)

type LocationType string

const (
	LocationCampus    LocationType = "CAMPUS"
	LocationFieldTrip LocationType = "FIELDTRIP"
)

// Attendance is one record per (employee, working day). Date is always
// truncated to UTC midnight; CheckinTime/CheckoutTime are absolute instants.
type Attendance struct {
	EmployeeNumber  string
	Date            time.Time
	CheckinTime     *time.Time
	CheckoutTime    *time.Time
	SessionType     Session
	AttendanceType  *DayType
	LocationType    LocationType
	TakenLocation   *string
	Latitude        *float64
	Longitude       *float64
	LocationAddress *string
	County          *string
	State           *string
	Postcode        *string
	PhotoURL        *string
	AudioURL        *string
	AudioDuration   *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TruncateToUTCDay normalizes a timestamp to the UTC midnight used as the
// attendance record key.
func TruncateToUTCDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

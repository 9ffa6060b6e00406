package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCompleted  = errors.New("you have already completed your attendance for today")
	ErrNoCheckIn         = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out for today")

	// General errors
	ErrAttendanceNotFound = errors.New("no attendance found for today")
)

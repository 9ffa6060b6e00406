package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrPINotFound    = errors.New("project investigator not found")
)

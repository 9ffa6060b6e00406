package fieldtrip

import "errors"

// Field trip domain errors
var (
	ErrInvalidWindow     = errors.New("field trip end date must not be before start date")
	ErrFieldTripNotFound = errors.New("field trip not found")
)

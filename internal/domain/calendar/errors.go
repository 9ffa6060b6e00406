package calendar

import "errors"

var (
	ErrInvalidYear  = errors.New("year must be between 2000 and 2100")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

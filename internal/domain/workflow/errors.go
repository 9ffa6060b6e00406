package workflow

import "errors"

// Workflow domain errors
var (
	ErrNoActiveRequest    = errors.New("no active data request for this period")
	ErrNothingSubmitted   = errors.New("no submitted data available for this period")
	ErrEmptySelection     = errors.New("employee selection must not be empty")
	ErrRequestNotFound    = errors.New("data request not found")
	ErrAdjustmentNotFound = errors.New("modified attendance entry not found")
)

package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrADUnavailable      = errors.New("authentication service is unavailable")
	ErrUnauthorized       = errors.New("authentication required")
	ErrAssertionExpired   = errors.New("sso assertion has expired")
)

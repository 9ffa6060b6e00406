package auth

import (
	"context"
)

// Service handles staff and HR authentication.
type Service interface {
	// Login verifies credentials against the AD verification service and
	// issues a bearer token for the resolved staff member.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// HRLogin verifies the fixed HR account and issues an HR-class token.
	HRLogin(ctx context.Context, req LoginRequest) (HRLoginResponse, error)

	// Profile returns identity, projects, and recent attendance for a user.
	Profile(ctx context.Context, username string) (ProfileResponse, error)
}

// ADVerifier checks a username/password pair against the upstream
// directory service. Unreachable upstream yields ErrADUnavailable.
type ADVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

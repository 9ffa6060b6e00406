package staff

import (
	"context"
)

// Directory is the read-only staff lookup capability backed by the merged
// upstream databases.
type Directory interface {
	// LookupByUsername resolves one staff member by login name.
	LookupByUsername(ctx context.Context, username string) (*Staff, error)

	// LookupByEmployeeID resolves one staff member by employee number.
	LookupByEmployeeID(ctx context.Context, employeeNumber string) (*Staff, error)

	// ListUnderPI retrieves every staff member reporting to a PI.
	ListUnderPI(ctx context.Context, piUsername string) ([]Staff, error)

	// ListPIs retrieves the distinct project investigators.
	ListPIs(ctx context.Context) ([]PI, error)

	// LookupPI resolves one PI by username.
	LookupPI(ctx context.Context, piUsername string) (*PI, error)
}

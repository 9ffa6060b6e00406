package staffdir

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
)

// service merges two upstream staff databases into one directory. Rows are
// deduplicated by employee number; when both sources know an employee, the
// row with fewer null fields wins, ties go to the primary source.
type service struct {
	primary   staff.Directory
	secondary staff.Directory
	logger    *slog.Logger
}

func NewMergedDirectory(primary, secondary staff.Directory, logger *slog.Logger) staff.Directory {
	return &service{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// pickRicher applies the merge tie-break to two rows for the same employee.
func pickRicher(primary, secondary *staff.Staff) *staff.Staff {
	if primary == nil {
		return secondary
	}
	if secondary == nil {
		return primary
	}
	if secondary.NullFieldCount() < primary.NullFieldCount() {
		return secondary
	}
	return primary
}

func (s *service) lookup(ctx context.Context, fetch func(staff.Directory) (*staff.Staff, error)) (*staff.Staff, error) {
	fromPrimary, err := fetch(s.primary)
	if err != nil {
		return nil, fmt.Errorf("primary staff source: %w", err)
	}

	fromSecondary, err := fetch(s.secondary)
	if err != nil {
		// Primary already answered; a broken secondary should not take
		// lookups down with it.
		if fromPrimary != nil {
			s.logger.Warn("secondary staff source failed, using primary row", "error", err)
			return fromPrimary, nil
		}
		return nil, fmt.Errorf("secondary staff source: %w", err)
	}

	merged := pickRicher(fromPrimary, fromSecondary)
	if merged == nil {
		return nil, staff.ErrStaffNotFound
	}

	return merged, nil
}

// LookupByUsername implements staff.Directory.
func (s *service) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	return s.lookup(ctx, func(d staff.Directory) (*staff.Staff, error) {
		return d.LookupByUsername(ctx, username)
	})
}

// LookupByEmployeeID implements staff.Directory.
func (s *service) LookupByEmployeeID(ctx context.Context, employeeNumber string) (*staff.Staff, error) {
	return s.lookup(ctx, func(d staff.Directory) (*staff.Staff, error) {
		return d.LookupByEmployeeID(ctx, employeeNumber)
	})
}

// ListUnderPI implements staff.Directory.
func (s *service) ListUnderPI(ctx context.Context, piUsername string) ([]staff.Staff, error) {
	fromPrimary, err := s.primary.ListUnderPI(ctx, piUsername)
	if err != nil {
		return nil, fmt.Errorf("primary staff source: %w", err)
	}

	fromSecondary, err := s.secondary.ListUnderPI(ctx, piUsername)
	if err != nil {
		return nil, fmt.Errorf("secondary staff source: %w", err)
	}

	byEmployee := make(map[string]*staff.Staff, len(fromPrimary)+len(fromSecondary))
	for i := range fromPrimary {
		byEmployee[fromPrimary[i].EmployeeNumber] = &fromPrimary[i]
	}
	for i := range fromSecondary {
		existing := byEmployee[fromSecondary[i].EmployeeNumber]
		byEmployee[fromSecondary[i].EmployeeNumber] = pickRicher(existing, &fromSecondary[i])
	}

	merged := make([]staff.Staff, 0, len(byEmployee))
	for _, row := range byEmployee {
		merged = append(merged, *row)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Username < merged[j].Username
	})

	return merged, nil
}

// ListPIs implements staff.Directory.
func (s *service) ListPIs(ctx context.Context) ([]staff.PI, error) {
	fromPrimary, err := s.primary.ListPIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("primary staff source: %w", err)
	}

	fromSecondary, err := s.secondary.ListPIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("secondary staff source: %w", err)
	}

	byUsername := make(map[string]staff.PI, len(fromPrimary)+len(fromSecondary))
	for _, pi := range fromPrimary {
		byUsername[pi.Username] = pi
	}
	for _, pi := range fromSecondary {
		existing, ok := byUsername[pi.Username]
		if !ok {
			byUsername[pi.Username] = pi
			continue
		}
		// Staff counts accumulate; identity fields keep the primary's
		// values unless it had none.
		existing.StaffCount += pi.StaffCount
		if existing.FullName == nil {
			existing.FullName = pi.FullName
		}
		if existing.EmployeeNumber == nil {
			existing.EmployeeNumber = pi.EmployeeNumber
		}
		byUsername[existing.Username] = existing
	}

	merged := make([]staff.PI, 0, len(byUsername))
	for _, pi := range byUsername {
		merged = append(merged, pi)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Username < merged[j].Username
	})

	return merged, nil
}

// LookupPI implements staff.Directory.
func (s *service) LookupPI(ctx context.Context, piUsername string) (*staff.PI, error) {
	fromPrimary, err := s.primary.LookupPI(ctx, piUsername)
	if err != nil {
		return nil, fmt.Errorf("primary staff source: %w", err)
	}

	fromSecondary, err := s.secondary.LookupPI(ctx, piUsername)
	if err != nil {
		return nil, fmt.Errorf("secondary staff source: %w", err)
	}

	if fromPrimary == nil && fromSecondary == nil {
		return nil, staff.ErrPINotFound
	}
	if fromPrimary == nil {
		return fromSecondary, nil
	}
	if fromSecondary != nil {
		fromPrimary.StaffCount += fromSecondary.StaffCount
		if fromPrimary.FullName == nil {
			fromPrimary.FullName = fromSecondary.FullName
		}
		if fromPrimary.EmployeeNumber == nil {
			fromPrimary.EmployeeNumber = fromSecondary.EmployeeNumber
		}
	}

	return fromPrimary, nil
}

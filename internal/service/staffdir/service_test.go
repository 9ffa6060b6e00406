package staffdir

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
)

type fakeSource struct {
	byUsername map[string]staff.Staff
	underPI    map[string][]staff.Staff
	pis        []staff.PI
	err        error
}

func (f *fakeSource) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	member, ok := f.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

func (f *fakeSource) LookupByEmployeeID(ctx context.Context, employeeNumber string) (*staff.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, member := range f.byUsername {
		if member.EmployeeNumber == employeeNumber {
			return &member, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) ListUnderPI(ctx context.Context, piUsername string) ([]staff.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.underPI[piUsername], nil
}

func (f *fakeSource) ListPIs(ctx context.Context) ([]staff.PI, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pis, nil
}

func (f *fakeSource) LookupPI(ctx context.Context, piUsername string) (*staff.PI, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, pi := range f.pis {
		if pi.Username == piUsername {
			return &pi, nil
		}
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }

func newDirectory(primary, secondary *fakeSource) staff.Directory {
	return NewMergedDirectory(primary, secondary, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLookupPrefersRowWithFewerNulls(t *testing.T) {
	sparse := staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1"}
	rich := staff.Staff{
		Username:       "jdoe",
		EmployeeNumber: "EMP-1",
		FullName:       strPtr("Jane Doe"),
		Email:          strPtr("jdoe@example.org"),
		PIUsername:     strPtr("drsmith"),
	}

	directory := newDirectory(
		&fakeSource{byUsername: map[string]staff.Staff{"jdoe": sparse}},
		&fakeSource{byUsername: map[string]staff.Staff{"jdoe": rich}},
	)

	member, err := directory.LookupByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotNil(t, member)
	require.NotNil(t, member.FullName)
	assert.Equal(t, "Jane Doe", *member.FullName)
}

func TestLookupTieGoesToPrimary(t *testing.T) {
	fromPrimary := staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1", FullName: strPtr("Primary Jane")}
	fromSecondary := staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1", FullName: strPtr("Secondary Jane")}

	directory := newDirectory(
		&fakeSource{byUsername: map[string]staff.Staff{"jdoe": fromPrimary}},
		&fakeSource{byUsername: map[string]staff.Staff{"jdoe": fromSecondary}},
	)

	member, err := directory.LookupByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Primary Jane", *member.FullName)
}

func TestLookupSurvivesSecondaryFailure(t *testing.T) {
	fromPrimary := staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1"}

	directory := newDirectory(
		&fakeSource{byUsername: map[string]staff.Staff{"jdoe": fromPrimary}},
		&fakeSource{err: errors.New("connection refused")},
	)

	member, err := directory.LookupByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "EMP-1", member.EmployeeNumber)
}

func TestLookupUnknownStaff(t *testing.T) {
	directory := newDirectory(&fakeSource{}, &fakeSource{})

	_, err := directory.LookupByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestListUnderPIMergesAndSorts(t *testing.T) {
	directory := newDirectory(
		&fakeSource{underPI: map[string][]staff.Staff{"drsmith": {
			{Username: "walter", EmployeeNumber: "EMP-2"},
			{Username: "alice", EmployeeNumber: "EMP-1"},
		}}},
		&fakeSource{underPI: map[string][]staff.Staff{"drsmith": {
			{Username: "alice", EmployeeNumber: "EMP-1", Email: strPtr("alice@example.org")},
			{Username: "mallory", EmployeeNumber: "EMP-3"},
		}}},
	)

	members, err := directory.ListUnderPI(context.Background(), "drsmith")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "mallory", members[1].Username)
	assert.Equal(t, "walter", members[2].Username)
	require.NotNil(t, members[0].Email)
	assert.Equal(t, "alice@example.org", *members[0].Email)
}

func TestListPIsAccumulatesStaffCounts(t *testing.T) {
	directory := newDirectory(
		&fakeSource{pis: []staff.PI{{Username: "drsmith", StaffCount: 3}}},
		&fakeSource{pis: []staff.PI{
			{Username: "drsmith", StaffCount: 2, FullName: strPtr("Dr Smith")},
			{Username: "drjones", StaffCount: 1},
		}},
	)

	pis, err := directory.ListPIs(context.Background())
	require.NoError(t, err)
	require.Len(t, pis, 2)

	assert.Equal(t, "drjones", pis[0].Username)
	assert.Equal(t, "drsmith", pis[1].Username)
	assert.Equal(t, 5, pis[1].StaffCount)
	require.NotNil(t, pis[1].FullName)
	assert.Equal(t, "Dr Smith", *pis[1].FullName)
}

func TestLookupPIUnknown(t *testing.T) {
	directory := newDirectory(&fakeSource{}, &fakeSource{})

	_, err := directory.LookupPI(context.Background(), "ghost")
	assert.ErrorIs(t, err, staff.ErrPINotFound)
}

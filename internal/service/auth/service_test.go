package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/pkg/jwt"
)

type fakeVerifier struct {
	valid bool
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	return f.valid, f.err
}

type fakeDirectory struct{}

func (f *fakeDirectory) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	if username != "jdoe" {
		return nil, staff.ErrStaffNotFound
	}
	empClass := "Scientist"
	return &staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1", EmpClass: &empClass}, nil
}

func (f *fakeDirectory) LookupByEmployeeID(ctx context.Context, employeeNumber string) (*staff.Staff, error) {
	return nil, staff.ErrStaffNotFound
}

func (f *fakeDirectory) ListUnderPI(ctx context.Context, piUsername string) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeDirectory) ListPIs(ctx context.Context) ([]staff.PI, error) {
	return nil, nil
}

func (f *fakeDirectory) LookupPI(ctx context.Context, piUsername string) (*staff.PI, error) {
	return nil, staff.ErrPINotFound
}

type fakeAttendanceRepo struct {
	recent []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeNumber string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListRecent(ctx context.Context, employeeNumber string, limit int) ([]attendance.Attendance, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeAttendanceRepo) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) MarkFullDay(ctx context.Context, employeeNumber string, date time.Time) error {
	return nil
}

func newTestService(t *testing.T, verifier *fakeVerifier, records *fakeAttendanceRepo) auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hr-password"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(
		verifier,
		&fakeDirectory{},
		records,
		jwt.NewJWTService("test-secret", "720h"),
		"HRUser",
		string(hash),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(t, &fakeVerifier{valid: true}, &fakeAttendanceRepo{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "EMP-1", resp.User.EmployeeNumber)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t, &fakeVerifier{valid: false}, &fakeAttendanceRepo{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginSurfacesVerifierOutage(t *testing.T) {
	svc := newTestService(t, &fakeVerifier{err: auth.ErrADUnavailable}, &fakeAttendanceRepo{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrADUnavailable)
}

func TestHRLogin(t *testing.T) {
	svc := newTestService(t, &fakeVerifier{}, &fakeAttendanceRepo{})

	resp, err := svc.HRLogin(context.Background(), auth.LoginRequest{Username: "HRUser", Password: "hr-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "HRUser", resp.Username)

	_, err = svc.HRLogin(context.Background(), auth.LoginRequest{Username: "HRUser", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.HRLogin(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "hr-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestProfileIncludesRecentAttendance(t *testing.T) {
	checkin := time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)
	records := &fakeAttendanceRepo{recent: []attendance.Attendance{{
		EmployeeNumber: "EMP-1",
		Date:           time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		CheckinTime:    &checkin,
		SessionType:    attendance.SessionFN,
	}}}
	svc := newTestService(t, &fakeVerifier{}, records)

	profile, err := svc.Profile(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", profile.User.Username)
	require.Len(t, profile.RecentAttendance, 1)
	assert.Equal(t, "2026-03-09", profile.RecentAttendance[0].Date)
}

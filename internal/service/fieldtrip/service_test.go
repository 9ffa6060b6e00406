package fieldtrip

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
)

type fakeFieldTripRepo struct {
	trips map[string]fieldtrip.FieldTrip
}

func newFakeFieldTripRepo() *fakeFieldTripRepo {
	return &fakeFieldTripRepo{trips: make(map[string]fieldtrip.FieldTrip)}
}

func (f *fakeFieldTripRepo) Create(ctx context.Context, trip fieldtrip.FieldTrip) (fieldtrip.FieldTrip, error) {
	f.trips[trip.ID] = trip
	return trip, nil
}

func (f *fakeFieldTripRepo) GetByID(ctx context.Context, id string) (*fieldtrip.FieldTrip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	return &trip, nil
}

func (f *fakeFieldTripRepo) Update(ctx context.Context, trip fieldtrip.FieldTrip) (fieldtrip.FieldTrip, error) {
	f.trips[trip.ID] = trip
	return trip, nil
}

func (f *fakeFieldTripRepo) DeactivateByID(ctx context.Context, id string) error {
	trip, ok := f.trips[id]
	if !ok {
		return fieldtrip.ErrFieldTripNotFound
	}
	trip.IsActive = false
	f.trips[id] = trip
	return nil
}

func (f *fakeFieldTripRepo) DeactivateByEmployee(ctx context.Context, employeeNumber string) error {
	for id, trip := range f.trips {
		if trip.EmployeeNumber == employeeNumber {
			trip.IsActive = false
			f.trips[id] = trip
		}
	}
	return nil
}

func (f *fakeFieldTripRepo) ListActiveByEmployee(ctx context.Context, employeeNumber string) ([]fieldtrip.FieldTrip, error) {
	var result []fieldtrip.FieldTrip
	for _, trip := range f.trips {
		if trip.EmployeeNumber == employeeNumber && trip.IsActive {
			result = append(result, trip)
		}
	}
	return result, nil
}

func (f *fakeFieldTripRepo) ListActiveOn(ctx context.Context, at time.Time) ([]fieldtrip.FieldTrip, error) {
	var result []fieldtrip.FieldTrip
	for _, trip := range f.trips {
		if trip.IsActive && trip.Covers(at) {
			result = append(result, trip)
		}
	}
	return result, nil
}

func (f *fakeFieldTripRepo) GetActiveCovering(ctx context.Context, employeeNumber string, at time.Time) (*fieldtrip.FieldTrip, error) {
	for _, trip := range f.trips {
		if trip.EmployeeNumber == employeeNumber && trip.IsActive && trip.Covers(at) {
			return &trip, nil
		}
	}
	return nil, nil
}

func (f *fakeFieldTripRepo) DeactivateEnded(ctx context.Context, before time.Time) ([]fieldtrip.FieldTrip, error) {
	var closed []fieldtrip.FieldTrip
	for id, trip := range f.trips {
		if trip.IsActive && trip.EndDate.Before(before) {
			trip.IsActive = false
			f.trips[id] = trip
			closed = append(closed, trip)
		}
	}
	return closed, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(employeeNumber string, date time.Time) string {
	return fmt.Sprintf("%s|%s", employeeNumber, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records[recordKey(a.EmployeeNumber, a.Date)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*attendance.Attendance, error) {
	record, ok := f.records[recordKey(employeeNumber, date)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records[recordKey(a.EmployeeNumber, a.Date)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeNumber string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListRecent(ctx context.Context, employeeNumber string, limit int) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) MarkFullDay(ctx context.Context, employeeNumber string, date time.Time) error {
	return nil
}

type fakeDirectory struct{}

func (f *fakeDirectory) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	if username != "jdoe" {
		return nil, staff.ErrStaffNotFound
	}
	return &staff.Staff{Username: "jdoe", EmployeeNumber: "EMP-1"}, nil
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

type fakeTransactor struct{}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string { return &s }

func newTestService(trips *fakeFieldTripRepo, records *fakeAttendanceRepo) *service {
	return &service{
		transactor:     &fakeTransactor{},
		fieldTripRepo:  trips,
		attendanceRepo: records,
		directory:      &fakeDirectory{},
		location:       time.UTC,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
	}
}

func activeTrip(id, employeeNumber string, startDay, endDay int, description *string) fieldtrip.FieldTrip {
	start, end := fieldtrip.NormalizeWindow(
		time.Date(2026, 3, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, endDay, 0, 0, 0, 0, time.UTC),
	)
	return fieldtrip.FieldTrip{
		ID:             id,
		EmployeeNumber: employeeNumber,
		StartDate:      start,
		EndDate:        end,
		Description:    description,
		IsActive:       true,
	}
}

func TestReplaceSupersedesActiveTrips(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["old1"] = activeTrip("old1", "EMP-1", 2, 4, nil)
	trips.trips["old2"] = activeTrip("old2", "EMP-1", 16, 18, nil)
	trips.trips["other"] = activeTrip("other", "EMP-2", 2, 4, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	created, err := svc.Replace(context.Background(), fieldtrip.SetFieldTripsRequest{
		EmployeeNumber: "EMP-1",
		FieldTrips: []fieldtrip.TripInput{
			{StartDate: "2026-03-10", EndDate: "2026-03-12", Description: strPtr("Glacier survey")},
		},
	}, "HRUser")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, "2026-03-10", created[0].StartDate)
	assert.Equal(t, "2026-03-12", created[0].EndDate)
	require.NotNil(t, created[0].CreatedBy)
	assert.Equal(t, "HRUser", *created[0].CreatedBy)

	// Only the new trip remains active for the employee.
	active, err := trips.ListActiveByEmployee(context.Background(), "EMP-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, created[0].ID, active[0].ID)
	assert.False(t, trips.trips["old1"].IsActive)
	assert.False(t, trips.trips["old2"].IsActive)

	// The window is normalized to cover the whole last day.
	assert.True(t, active[0].Covers(time.Date(2026, 3, 12, 23, 0, 0, 0, time.UTC)))

	// Other employees keep their trips.
	assert.True(t, trips.trips["other"].IsActive)
}

func TestReplaceWithEmptyListClearsTrips(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["old"] = activeTrip("old", "EMP-1", 2, 4, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	created, err := svc.Replace(context.Background(), fieldtrip.SetFieldTripsRequest{
		EmployeeNumber: "EMP-1",
	}, "HRUser")
	require.NoError(t, err)
	assert.Empty(t, created)

	active, err := trips.ListActiveByEmployee(context.Background(), "EMP-1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestReplaceRejectsInvertedInputWindow(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["old"] = activeTrip("old", "EMP-1", 2, 4, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	_, err := svc.Replace(context.Background(), fieldtrip.SetFieldTripsRequest{
		EmployeeNumber: "EMP-1",
		FieldTrips: []fieldtrip.TripInput{
			{StartDate: "2026-03-12", EndDate: "2026-03-10"},
		},
	}, "HRUser")
	require.Error(t, err)

	// Validation failed before any write, so the old trip survives.
	assert.True(t, trips.trips["old"].IsActive)
}

func TestAutoMarkCreatesAttendance(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, strPtr("Glacier survey"))
	records := newFakeAttendanceRepo()
	svc := newTestService(trips, records)

	asOf := time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC)
	result, err := svc.AutoMarkAttendance(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMP-1"}, result.Marked)
	assert.Empty(t, result.AlreadyMarked)

	stored, err := records.GetByEmployeeAndDate(context.Background(), "EMP-1", attendance.TruncateToUTCDay(asOf))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.SessionFN, stored.SessionType)
	require.NotNil(t, stored.AttendanceType)
	assert.Equal(t, attendance.FullDay, *stored.AttendanceType)
	assert.Equal(t, attendance.LocationFieldTrip, stored.LocationType)
	require.NotNil(t, stored.TakenLocation)
	assert.Equal(t, "Field Trip - Glacier survey", *stored.TakenLocation)
	assert.Equal(t, 9, stored.CheckinTime.Hour())
	assert.Equal(t, 17, stored.CheckoutTime.Hour())
}

func TestAutoMarkSkipsExistingRecords(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, nil)
	records := newFakeAttendanceRepo()

	asOf := time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC)
	checkin := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	records.records[recordKey("EMP-1", attendance.TruncateToUTCDay(asOf))] = attendance.Attendance{
		EmployeeNumber: "EMP-1",
		Date:           attendance.TruncateToUTCDay(asOf),
		CheckinTime:    &checkin,
	}

	svc := newTestService(trips, records)
	result, err := svc.AutoMarkAttendance(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, result.Marked)
	assert.Equal(t, []string{"EMP-1"}, result.AlreadyMarked)
}

func TestAutoMarkOutsideWindow(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	result, err := svc.AutoMarkAttendance(context.Background(), time.Date(2026, 3, 13, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, result.Marked)
	assert.Empty(t, result.AlreadyMarked)
}

func TestSweepExpiredClosesEndedTrips(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["old"] = activeTrip("old", "EMP-1", 1, 5, nil)
	trips.trips["running"] = activeTrip("running", "EMP-2", 10, 20, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	closed, err := svc.SweepExpired(context.Background(), time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "old", closed[0].ID)

	assert.False(t, trips.trips["old"].IsActive)
	assert.True(t, trips.trips["running"].IsActive)

	// A repeat sweep finds nothing left to close.
	closed, err = svc.SweepExpired(context.Background(), time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestActiveOnReportsDaysRemaining(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	active, err := svc.ActiveOn(context.Background(), time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 3, active[0].DaysRemaining)
}

func TestUpdateTripRejectsInvertedWindow(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	_, err := svc.UpdateTrip(context.Background(), "t1", fieldtrip.UpdateFieldTripRequest{
		EndDate: strPtr("2026-03-08"),
	})
	assert.ErrorIs(t, err, fieldtrip.ErrInvalidWindow)
}

func TestUpdateTripUnknownID(t *testing.T) {
	svc := newTestService(newFakeFieldTripRepo(), newFakeAttendanceRepo())

	_, err := svc.UpdateTrip(context.Background(), "missing", fieldtrip.UpdateFieldTripRequest{})
	assert.ErrorIs(t, err, fieldtrip.ErrFieldTripNotFound)
}

func TestActiveByUsernameResolvesEmployee(t *testing.T) {
	trips := newFakeFieldTripRepo()
	trips.trips["t1"] = activeTrip("t1", "EMP-1", 10, 12, nil)
	svc := newTestService(trips, newFakeAttendanceRepo())

	active, err := svc.ActiveByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "EMP-1", active[0].EmployeeNumber)

	_, err = svc.ActiveByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

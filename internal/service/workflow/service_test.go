package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
)

type fakeRequestRepo struct {
	rows   map[string]workflow.DataRequest
	nextID int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[string]workflow.DataRequest)}
}

func requestKey(piUsername string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", piUsername, month, year)
}

func (f *fakeRequestRepo) Upsert(ctx context.Context, req workflow.DataRequest) (workflow.DataRequest, error) {
	key := requestKey(req.PIUsername, req.Month, req.Year)
	existing, ok := f.rows[key]
	if ok {
		req.ID = existing.ID
	} else {
		f.nextID++
		req.ID = f.nextID
	}
	req.Status = workflow.StatusPending
	req.RequestedAt = time.Now()
	req.SubmittedAt = nil
	req.DownloadedAt = nil
	req.SubmittedCount = 0
	req.TotalCount = 0
	req.SubmittedEmployeeIDs = nil
	req.IsPartial = false
	f.rows[key] = req
	return req, nil
}

func (f *fakeRequestRepo) Get(ctx context.Context, piUsername string, month, year int) (*workflow.DataRequest, error) {
	row, ok := f.rows[requestKey(piUsername, month, year)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, req workflow.DataRequest) (workflow.DataRequest, error) {
	for key, row := range f.rows {
		if row.ID == req.ID {
			f.rows[key] = req
			return req, nil
		}
	}
	return workflow.DataRequest{}, workflow.ErrRequestNotFound
}

func (f *fakeRequestRepo) ListPendingByPI(ctx context.Context, piUsername string) ([]workflow.DataRequest, error) {
	var result []workflow.DataRequest
	for _, row := range f.rows {
		if row.PIUsername == piUsername && row.Status == workflow.StatusPending {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) ListByPeriod(ctx context.Context, month, year int) ([]workflow.DataRequest, error) {
	var result []workflow.DataRequest
	for _, row := range f.rows {
		if row.Month == month && row.Year == year {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeAdjustmentRepo struct {
	rows   []workflow.ModifiedAttendance
	nextID int64
}

func (f *fakeAdjustmentRepo) Create(ctx context.Context, adj workflow.ModifiedAttendance) (workflow.ModifiedAttendance, error) {
	f.nextID++
	adj.ID = f.nextID
	adj.CreatedAt = time.Now()
	f.rows = append(f.rows, adj)
	return adj, nil
}

func (f *fakeAdjustmentRepo) ListByEmployee(ctx context.Context, employeeNumber string) ([]workflow.ModifiedAttendance, error) {
	var result []workflow.ModifiedAttendance
	for _, row := range f.rows {
		if row.EmployeeNumber == employeeNumber {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeAdjustmentRepo) ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]workflow.ModifiedAttendance, error) {
	return nil, nil
}

func (f *fakeAdjustmentRepo) Delete(ctx context.Context, id int64) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return workflow.ErrAdjustmentNotFound
}

type fakeDirectory struct {
	underPI map[string][]staff.Staff
}

func (f *fakeDirectory) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	return &staff.Staff{Username: username, EmployeeNumber: "PI-" + username}, nil
}

func (f *fakeDirectory) LookupByEmployeeID(ctx context.Context, employeeNumber string) (*staff.Staff, error) {
	return nil, staff.ErrStaffNotFound
}

func (f *fakeDirectory) ListUnderPI(ctx context.Context, piUsername string) ([]staff.Staff, error) {
	return f.underPI[piUsername], nil
}

func (f *fakeDirectory) ListPIs(ctx context.Context) ([]staff.PI, error) {
	var result []staff.PI
	for username := range f.underPI {
		result = append(result, staff.PI{Username: username, StaffCount: len(f.underPI[username])})
	}
	return result, nil
}

func (f *fakeDirectory) LookupPI(ctx context.Context, piUsername string) (*staff.PI, error) {
	if _, ok := f.underPI[piUsername]; !ok {
		return nil, staff.ErrPINotFound
	}
	return &staff.PI{Username: piUsername}, nil
}

type fakeReportService struct{}

func (f *fakeReportService) StatsForEmployees(ctx context.Context, employeeNumbers []string, month, year int) ([]report.EmployeeMonthStats, error) {
	rows := make([]report.EmployeeMonthStats, 0, len(employeeNumbers))
	for _, empNo := range employeeNumbers {
		rows = append(rows, report.EmployeeMonthStats{EmployeeNumber: empNo, Username: empNo})
	}
	return rows, nil
}

func (f *fakeReportService) StatsUnderPI(ctx context.Context, piUsername string, month, year int) (report.MonthReport, error) {
	return report.MonthReport{Month: month, Year: year}, nil
}

func (f *fakeReportService) RenderCSV(r report.MonthReport) ([]byte, error) {
	return nil, nil
}

func staffUnder(piUsername string, count int) []staff.Staff {
	members := make([]staff.Staff, 0, count)
	for i := 1; i <= count; i++ {
		members = append(members, staff.Staff{
			Username:       fmt.Sprintf("user%d", i),
			EmployeeNumber: fmt.Sprintf("EMP-%d", i),
		})
	}
	return members
}

func newTestService(requests *fakeRequestRepo, adjustments *fakeAdjustmentRepo, directory *fakeDirectory) *service {
	return &service{
		requestRepo:    requests,
		adjustmentRepo: adjustments,
		directory:      directory,
		reportSvc:      &fakeReportService{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
	}
}

func TestRequestSubmitDownloadFlow(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 3)}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	created, err := svc.Request(ctx, workflow.RequestDataRequest{
		PIUsernames: []string{"drsmith"},
		Month:       3,
		Year:        2026,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "PENDING", created[0].Status)

	submitted, err := svc.Submit(ctx, "drsmith", workflow.SubmitDataRequest{
		Month:   3,
		Year:    2026,
		SendAll: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", submitted.Status)
	assert.Equal(t, 3, submitted.SubmittedCount)
	assert.Equal(t, 3, submitted.TotalCount)
	assert.False(t, submitted.IsPartial)

	result, err := svc.Download(ctx, []string{"drsmith"}, 3, 2026)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 3)
	assert.Empty(t, result.PartialNotes)

	stored, err := requests.Get(ctx, "drsmith", 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusDownloaded, stored.Status)
}

func TestSubmitWithoutRequestFails(t *testing.T) {
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 2)}}
	svc := newTestService(newFakeRequestRepo(), &fakeAdjustmentRepo{}, directory)

	_, err := svc.Submit(context.Background(), "drsmith", workflow.SubmitDataRequest{
		Month:   3,
		Year:    2026,
		SendAll: true,
	})
	assert.ErrorIs(t, err, workflow.ErrNoActiveRequest)
}

func TestDoubleSubmitFails(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 2)}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	_, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "drsmith", workflow.SubmitDataRequest{Month: 3, Year: 2026, SendAll: true})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "drsmith", workflow.SubmitDataRequest{Month: 3, Year: 2026, SendAll: true})
	assert.ErrorIs(t, err, workflow.ErrNoActiveRequest)
}

func TestPartialSubmissionNote(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 3)}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	_, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)

	submitted, err := svc.Submit(ctx, "drsmith", workflow.SubmitDataRequest{
		Month:           3,
		Year:            2026,
		EmployeeNumbers: []string{"EMP-1", "EMP-3"},
	})
	require.NoError(t, err)
	assert.True(t, submitted.IsPartial)
	assert.Equal(t, 2, submitted.SubmittedCount)

	result, err := svc.Download(ctx, []string{"drsmith"}, 3, 2026)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	require.Len(t, result.PartialNotes, 1)
	assert.Contains(t, result.PartialNotes[0], "2 of 3")
}

func TestDownloadWithoutSubmissionFails(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 2)}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	_, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)

	_, err = svc.Download(ctx, []string{"drsmith"}, 3, 2026)
	assert.ErrorIs(t, err, workflow.ErrNothingSubmitted)
}

func TestReRequestResetsSubmission(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{"drsmith": staffUnder("drsmith", 2)}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	_, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "drsmith", workflow.SubmitDataRequest{Month: 3, Year: 2026, SendAll: true})
	require.NoError(t, err)

	created, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", created[0].Status)
	assert.Equal(t, 0, created[0].SubmittedCount)

	_, err = svc.Download(ctx, []string{"drsmith"}, 3, 2026)
	assert.ErrorIs(t, err, workflow.ErrNothingSubmitted)
}

func TestSubmissionStatus(t *testing.T) {
	requests := newFakeRequestRepo()
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{
		"drsmith": staffUnder("drsmith", 2),
		"drjones": staffUnder("drjones", 1),
	}}
	svc := newTestService(requests, &fakeAdjustmentRepo{}, directory)
	ctx := context.Background()

	_, err := svc.Request(ctx, workflow.RequestDataRequest{PIUsernames: []string{"drsmith"}, Month: 3, Year: 2026})
	require.NoError(t, err)

	entries, err := svc.SubmissionStatus(ctx, 3, 2026)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPI := make(map[string]workflow.SubmissionStatusEntry)
	for _, entry := range entries {
		byPI[entry.PIUsername] = entry
	}
	assert.Equal(t, "requested", byPI["drsmith"].Status)
	assert.Equal(t, "none", byPI["drjones"].Status)
}

func TestModifyAttendanceLifecycle(t *testing.T) {
	adjustments := &fakeAdjustmentRepo{}
	directory := &fakeDirectory{underPI: map[string][]staff.Staff{}}
	svc := newTestService(newFakeRequestRepo(), adjustments, directory)
	ctx := context.Background()

	comment := "worked offsite"
	created, err := svc.ModifyAttendance(ctx, "drsmith", workflow.ModifyAttendanceRequest{
		EmployeeNumber: "EMP-1",
		Date:           "2026-03-05",
		Status:         "ADDED",
		Comment:        &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, "ADDED", created.Status)
	assert.Equal(t, "PI-drsmith", created.PIEmployeeNumber)

	listed, err := svc.ModifiedAttendanceFor(ctx, "EMP-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteModifiedAttendance(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteModifiedAttendance(ctx, created.ID), workflow.ErrAdjustmentNotFound)
}

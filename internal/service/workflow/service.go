package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
)

type service struct {
	requestRepo    workflow.RequestRepository
	adjustmentRepo workflow.AdjustmentRepository
	directory      staff.Directory
	reportSvc      report.Service
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	requestRepo workflow.RequestRepository,
	adjustmentRepo workflow.AdjustmentRepository,
	directory staff.Directory,
	reportSvc report.Service,
	logger *slog.Logger,
) workflow.Service {
	return &service{
		requestRepo:    requestRepo,
		adjustmentRepo: adjustmentRepo,
		directory:      directory,
		reportSvc:      reportSvc,
		logger:         logger,
		now:            time.Now,
	}
}

// Request implements workflow.Service. Re-requesting an already-answered
// period resets the row to PENDING and discards the previous submission.
func (s *service) Request(ctx context.Context, req workflow.RequestDataRequest) ([]workflow.DataRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responses := make([]workflow.DataRequestResponse, 0, len(req.PIUsernames))
	for _, piUsername := range req.PIUsernames {
		stored, err := s.requestRepo.Upsert(ctx, workflow.DataRequest{
			PIUsername: piUsername,
			Month:      req.Month,
			Year:       req.Year,
			Message:    req.Message,
		})
		if err != nil {
			return nil, err
		}
		responses = append(responses, stored.ToResponse())
	}

	s.logger.Info("data requested from PIs",
		"count", len(responses), "month", req.Month, "year", req.Year)

	return responses, nil
}

// Submit implements workflow.Service.
func (s *service) Submit(ctx context.Context, piUsername string, req workflow.SubmitDataRequest) (workflow.DataRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return workflow.DataRequestResponse{}, err
	}

	request, err := s.requestRepo.Get(ctx, piUsername, req.Month, req.Year)
	if err != nil {
		return workflow.DataRequestResponse{}, err
	}
	if request == nil || request.Status != workflow.StatusPending {
		return workflow.DataRequestResponse{}, workflow.ErrNoActiveRequest
	}

	members, err := s.directory.ListUnderPI(ctx, piUsername)
	if err != nil {
		return workflow.DataRequestResponse{}, fmt.Errorf("failed to list staff under PI: %w", err)
	}

	allNumbers := make([]string, 0, len(members))
	for _, member := range members {
		allNumbers = append(allNumbers, member.EmployeeNumber)
	}

	var selection []string
	if req.SendAll {
		selection = allNumbers
	} else {
		// Only employees actually under this PI can be submitted.
		underPI := make(map[string]bool, len(allNumbers))
		for _, empNo := range allNumbers {
			underPI[empNo] = true
		}
		for _, empNo := range req.EmployeeNumbers {
			if underPI[empNo] {
				selection = append(selection, empNo)
			}
		}
		if len(selection) == 0 && len(allNumbers) > 0 {
			return workflow.DataRequestResponse{}, workflow.ErrEmptySelection
		}
	}

	submittedAt := s.now()
	request.Status = workflow.StatusSubmitted
	request.SubmittedAt = &submittedAt
	request.SubmittedCount = len(selection)
	request.TotalCount = len(allNumbers)
	request.SubmittedEmployeeIDs = selection
	request.IsPartial = len(selection) < len(allNumbers)

	stored, err := s.requestRepo.Update(ctx, *request)
	if err != nil {
		return workflow.DataRequestResponse{}, err
	}

	s.logger.Info("PI submitted attendance data",
		"pi_username", piUsername, "month", req.Month, "year", req.Year,
		"submitted", stored.SubmittedCount, "total", stored.TotalCount)

	return stored.ToResponse(), nil
}

// Download implements workflow.Service. Statistics are recomputed from the
// store for the employee set each PI submitted, so repeat downloads keep
// working across restarts.
func (s *service) Download(ctx context.Context, piUsernames []string, month, year int) (report.MonthReport, error) {
	result := report.MonthReport{Month: month, Year: year, Rows: []report.EmployeeMonthStats{}}
	qualified := 0

	for _, piUsername := range piUsernames {
		request, err := s.requestRepo.Get(ctx, piUsername, month, year)
		if err != nil {
			return report.MonthReport{}, err
		}
		if request == nil || (request.Status != workflow.StatusSubmitted && request.Status != workflow.StatusDownloaded) {
			continue
		}
		qualified++

		if len(request.SubmittedEmployeeIDs) > 0 {
			rows, err := s.reportSvc.StatsForEmployees(ctx, request.SubmittedEmployeeIDs, month, year)
			if err != nil {
				return report.MonthReport{}, err
			}
			result.Rows = append(result.Rows, rows...)
		}

		if request.IsPartial {
			result.PartialNotes = append(result.PartialNotes, fmt.Sprintf(
				"%s submitted %d of %d staff", piUsername, request.SubmittedCount, request.TotalCount))
		}

		downloadedAt := s.now()
		request.Status = workflow.StatusDownloaded
		request.DownloadedAt = &downloadedAt
		if _, err := s.requestRepo.Update(ctx, *request); err != nil {
			return report.MonthReport{}, err
		}
	}

	if qualified == 0 {
		return report.MonthReport{}, workflow.ErrNothingSubmitted
	}

	return result, nil
}

// Notifications implements workflow.Service.
func (s *service) Notifications(ctx context.Context, piUsername string) ([]workflow.DataRequestResponse, error) {
	requests, err := s.requestRepo.ListPendingByPI(ctx, piUsername)
	if err != nil {
		return nil, err
	}

	responses := make([]workflow.DataRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}

	return responses, nil
}

// SubmissionStatus implements workflow.Service. Status per PI: none (never
// asked), requested (PENDING), pending (SUBMITTED, awaiting download),
// complete (DOWNLOADED).
func (s *service) SubmissionStatus(ctx context.Context, month, year int) ([]workflow.SubmissionStatusEntry, error) {
	pis, err := s.directory.ListPIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list PIs: %w", err)
	}

	requests, err := s.requestRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	byPI := make(map[string]workflow.DataRequest, len(requests))
	for _, request := range requests {
		byPI[request.PIUsername] = request
	}

	entries := make([]workflow.SubmissionStatusEntry, 0, len(pis))
	for _, pi := range pis {
		entry := workflow.SubmissionStatusEntry{
			PIUsername: pi.Username,
			Status:     "none",
		}

		if request, ok := byPI[pi.Username]; ok {
			switch request.Status {
			case workflow.StatusPending:
				entry.Status = "requested"
			case workflow.StatusSubmitted:
				entry.Status = "pending"
			case workflow.StatusDownloaded:
				entry.Status = "complete"
			}
			entry.SubmittedCount = request.SubmittedCount
			entry.TotalCount = request.TotalCount
			entry.IsPartial = request.IsPartial
			if request.SubmittedAt != nil {
				submittedAt := request.SubmittedAt.Format("2006-01-02 15:04:05")
				entry.SubmittedAt = &submittedAt
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ModifyAttendance implements workflow.Service.
func (s *service) ModifyAttendance(ctx context.Context, piUsername string, req workflow.ModifyAttendanceRequest) (workflow.ModifiedAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return workflow.ModifiedAttendanceResponse{}, err
	}

	pi, err := s.directory.LookupByUsername(ctx, piUsername)
	if err != nil {
		return workflow.ModifiedAttendanceResponse{}, fmt.Errorf("failed to resolve PI: %w", err)
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	adjustment, err := s.adjustmentRepo.Create(ctx, workflow.ModifiedAttendance{
		EmployeeNumber:   req.EmployeeNumber,
		Date:             date,
		Status:           workflow.AdjustmentStatus(req.Status),
		Comment:          req.Comment,
		PIEmployeeNumber: pi.EmployeeNumber,
	})
	if err != nil {
		return workflow.ModifiedAttendanceResponse{}, err
	}

	return adjustment.ToResponse(), nil
}

// ModifiedAttendanceFor implements workflow.Service.
func (s *service) ModifiedAttendanceFor(ctx context.Context, employeeNumber string) ([]workflow.ModifiedAttendanceResponse, error) {
	adjustments, err := s.adjustmentRepo.ListByEmployee(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}

	responses := make([]workflow.ModifiedAttendanceResponse, 0, len(adjustments))
	for _, adjustment := range adjustments {
		responses = append(responses, adjustment.ToResponse())
	}

	return responses, nil
}

// DeleteModifiedAttendance implements workflow.Service.
func (s *service) DeleteModifiedAttendance(ctx context.Context, id int64) error {
	return s.adjustmentRepo.Delete(ctx, id)
}

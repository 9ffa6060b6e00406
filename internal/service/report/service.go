package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
)

type service struct {
	attendanceRepo attendance.Repository
	adjustmentRepo workflow.AdjustmentRepository
	calendarSvc    calendar.Service
	directory      staff.Directory
}

func NewService(
	attendanceRepo attendance.Repository,
	adjustmentRepo workflow.AdjustmentRepository,
	calendarSvc calendar.Service,
	directory staff.Directory,
) report.Service {
	return &service{
		attendanceRepo: attendanceRepo,
		adjustmentRepo: adjustmentRepo,
		calendarSvc:    calendarSvc,
		directory:      directory,
	}
}

// StatsForEmployees implements report.Service. A half day weighs 0.5 toward
// the total; open records count only in NotCheckedOut.
func (s *service) StatsForEmployees(ctx context.Context, employeeNumbers []string, month, year int) ([]report.EmployeeMonthStats, error) {
	if len(employeeNumbers) == 0 {
		return nil, report.ErrNoEmployees
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListByEmployeesAndRange(ctx, employeeNumbers, start, end)
	if err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListByEmployeesAndRange(ctx, employeeNumbers, start, end)
	if err != nil {
		return nil, err
	}

	workingDays, err := s.calendarSvc.WorkingDays(ctx, year, month)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]*report.EmployeeMonthStats, len(employeeNumbers))
	result := make([]report.EmployeeMonthStats, len(employeeNumbers))
	for i, empNo := range employeeNumbers {
		result[i] = report.EmployeeMonthStats{
			EmployeeNumber: empNo,
			Username:       empNo,
			WorkingDays:    workingDays,
		}
		byEmployee[empNo] = &result[i]

		member, err := s.directory.LookupByEmployeeID(ctx, empNo)
		if err == nil && member != nil {
			result[i].Username = member.Username
		}
	}

	for _, record := range records {
		stats, ok := byEmployee[record.EmployeeNumber]
		if !ok {
			continue
		}
		switch {
		case record.AttendanceType != nil && *record.AttendanceType == attendance.FullDay:
			stats.FullDays++
		case record.AttendanceType != nil && *record.AttendanceType == attendance.HalfDay:
			stats.HalfDays += 0.5
		default:
			stats.NotCheckedOut++
		}
	}

	for _, adj := range adjustments {
		stats, ok := byEmployee[adj.EmployeeNumber]
		if !ok {
			continue
		}
		switch adj.Status {
		case workflow.AdjustmentAdded:
			stats.AddedDays++
		case workflow.AdjustmentRemoved:
			stats.RemovedDays++
		}
	}

	for i := range result {
		stats := &result[i]
		stats.TotalDays = float64(stats.FullDays) + stats.HalfDays +
			float64(stats.AddedDays) - float64(stats.RemovedDays)
		stats.AbsentDays = float64(stats.WorkingDays) - stats.TotalDays
		if stats.AbsentDays < 0 {
			stats.AbsentDays = 0
		}
	}

	return result, nil
}

// StatsUnderPI implements report.Service.
func (s *service) StatsUnderPI(ctx context.Context, piUsername string, month, year int) (report.MonthReport, error) {
	members, err := s.directory.ListUnderPI(ctx, piUsername)
	if err != nil {
		return report.MonthReport{}, fmt.Errorf("failed to list staff under PI: %w", err)
	}

	result := report.MonthReport{Month: month, Year: year, Rows: []report.EmployeeMonthStats{}}
	if len(members) == 0 {
		return result, nil
	}

	employeeNumbers := make([]string, 0, len(members))
	for _, member := range members {
		employeeNumbers = append(employeeNumbers, member.EmployeeNumber)
	}

	rows, err := s.StatsForEmployees(ctx, employeeNumbers, month, year)
	if err != nil {
		return report.MonthReport{}, err
	}
	result.Rows = rows

	return result, nil
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderCSV implements report.Service.
func (s *service) RenderCSV(r report.MonthReport) ([]byte, error) {
	var buf bytes.Buffer

	// Partial-submission notes go above the header as comment lines so
	// spreadsheet imports can skip them.
	for _, note := range r.PartialNotes {
		fmt.Fprintf(&buf, "# %s\n", note)
	}

	w := csv.NewWriter(&buf)

	header := []string{"Username", "Working Days", "Present Days", "Absent Days", "Added Days", "Removed Days", "Final Total"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range r.Rows {
		present := float64(row.FullDays) + row.HalfDays
		record := []string{
			row.Username,
			strconv.Itoa(row.WorkingDays),
			formatDays(present),
			formatDays(row.AbsentDays),
			strconv.Itoa(row.AddedDays),
			strconv.Itoa(row.RemovedDays),
			formatDays(row.TotalDays),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

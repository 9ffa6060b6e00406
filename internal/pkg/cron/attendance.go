package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.Repository, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_complete_open_attendances", 1*time.Hour, j.AutoCompleteOpenAttendances)
}

// AutoCompleteOpenAttendances physically marks today's open records as
// FULL_DAY. Gated to the last hour of the local day; the read-side patch
// covers the window between 23:00 and the tick.
func (j *AttendanceJobs) AutoCompleteOpenAttendances(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Hour() != 23 {
		return nil
	}

	slog.Info("Cron: Starting auto-complete open attendances job")

	today := attendance.TruncateToUTCDay(now)
	open, err := j.attendanceRepo.ListOpenByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open attendances: %w", err)
	}

	if len(open) == 0 {
		slog.Info("Cron: No open attendances found")
		return nil
	}

	completedCount := 0
	for _, record := range open {
		if err := j.attendanceRepo.MarkFullDay(ctx, record.EmployeeNumber, record.Date); err != nil {
			slog.Error("Cron: Failed to auto-complete attendance",
				"employee_number", record.EmployeeNumber,
				"date", record.Date.Format("2006-01-02"),
				"error", err)
			continue
		}
		completedCount++
	}

	slog.Info("Cron: Auto-completed open attendances", "count", completedCount)
	return nil
}

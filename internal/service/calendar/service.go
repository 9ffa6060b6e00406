package calendar

import (
	"context"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
)

type service struct {
	calendarRepo calendar.Repository
	location     *time.Location
	now          func() time.Time
}

func NewService(calendarRepo calendar.Repository, location *time.Location) calendar.Service {
	return &service{
		calendarRepo: calendarRepo,
		location:     location,
		now:          time.Now,
	}
}

// Entries implements calendar.Service.
func (s *service) Entries(ctx context.Context, year int, month *int) ([]calendar.MonthSummary, error) {
	if year < 2000 || year > 2100 {
		return nil, calendar.ErrInvalidYear
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, calendar.ErrInvalidMonth
	}

	var start, end time.Time
	if month != nil {
		start = time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	} else {
		start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	entries, err := s.calendarRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]*calendar.MonthSummary)
	var order []int
	for _, entry := range entries {
		m := int(entry.Date.Month())
		summary, ok := byMonth[m]
		if !ok {
			summary = &calendar.MonthSummary{Month: m}
			byMonth[m] = summary
			order = append(order, m)
		}
		summary.Entries = append(summary.Entries, entry.ToResponse())
		if entry.IsHoliday {
			summary.Holidays++
		}
		if entry.IsWeekend {
			summary.Weekends++
		}
	}

	result := make([]calendar.MonthSummary, 0, len(order))
	for _, m := range order {
		result = append(result, *byMonth[m])
	}

	return result, nil
}

// Holidays implements calendar.Service.
func (s *service) Holidays(ctx context.Context, year int) ([]calendar.EntryResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, calendar.ErrInvalidYear
	}

	entries, err := s.calendarRepo.ListHolidays(ctx, year)
	if err != nil {
		return nil, err
	}

	result := make([]calendar.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.ToResponse())
	}

	return result, nil
}

// WorkingDays implements calendar.Service. The range is clamped to today so
// a month in progress only counts days that have happened.
func (s *service) WorkingDays(ctx context.Context, year, month int) (int, error) {
	if year < 2000 || year > 2100 {
		return 0, calendar.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return 0, calendar.ErrInvalidMonth
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.After(today) {
		return 0, nil
	}
	if end.After(today) {
		end = today
	}

	nonWorking, err := s.calendarRepo.CountNonWorking(ctx, start, end)
	if err != nil {
		return 0, err
	}

	total := int(end.Sub(start).Hours()/24) + 1
	working := total - nonWorking
	if working < 0 {
		working = 0
	}

	return working, nil
}

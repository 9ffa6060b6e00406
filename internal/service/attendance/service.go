package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/pkg/geocode"
)

type service struct {
	attendanceRepo attendance.Repository
	fieldTripRepo  fieldtrip.Repository
	directory      staff.Directory
	geocoder       geocode.Client
	location       *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	fieldTripRepo fieldtrip.Repository,
	directory staff.Directory,
	geocoder geocode.Client,
	location *time.Location,
	logger *slog.Logger,
) attendance.Service {
	return &service{
		attendanceRepo: attendanceRepo,
		fieldTripRepo:  fieldTripRepo,
		directory:      directory,
		geocoder:       geocoder,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckIn implements attendance.Service. The returned bool is true when an
// open record for today was overwritten (re-check-in) rather than created.
func (s *service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, false, err
	}

	member, err := s.directory.LookupByUsername(ctx, req.Username)
	if err != nil {
		return attendance.AttendanceResponse{}, false, fmt.Errorf("failed to resolve employee: %w", err)
	}

	now := s.now().In(s.location)
	date := attendance.TruncateToUTCDay(now)
	checkin := now

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, member.EmployeeNumber, date)
	if err != nil {
		return attendance.AttendanceResponse{}, false, err
	}
	if existing != nil && existing.CheckoutTime != nil {
		// Completed day; surface the stored record alongside the conflict.
		return existing.ToResponse(), false, attendance.ErrAlreadyCompleted
	}

	locationType := req.LocationType
	if locationType == "" {
		locationType = attendance.LocationCampus
	}
	takenLocation := req.Location

	trip, err := s.fieldTripRepo.GetActiveCovering(ctx, member.EmployeeNumber, now)
	if err != nil {
		return attendance.AttendanceResponse{}, false, err
	}
	if trip != nil {
		locationType = attendance.LocationFieldTrip
		sentinel := fieldtrip.SentinelLocation
		takenLocation = &sentinel
	}

	record := attendance.Attendance{
		EmployeeNumber: member.EmployeeNumber,
		Date:           date,
		CheckinTime:    &checkin,
		SessionType:    attendance.ClassifySession(now),
		LocationType:   locationType,
		TakenLocation:  takenLocation,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		PhotoURL:       req.PhotoURL,
		AudioURL:       req.AudioURL,
		AudioDuration:  req.AudioDuration,
	}

	if req.Latitude != nil && req.Longitude != nil {
		// Best effort; a failed lookup leaves the address fields null.
		details := s.geocoder.Reverse(ctx, *req.Latitude, *req.Longitude)
		record.LocationAddress = details.LocationAddress
		record.County = details.County
		record.State = details.State
		record.Postcode = details.Postcode
	}

	if existing != nil {
		stored, err := s.attendanceRepo.Update(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, false, err
		}
		s.logger.Info("re-check-in overwrote open record",
			"employee_number", member.EmployeeNumber, "date", date.Format("2006-01-02"))
		return stored.ToResponse(), true, nil
	}

	stored, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, false, err
	}

	return stored.ToResponse(), false, nil
}

// CheckOut implements attendance.Service.
func (s *service) CheckOut(ctx context.Context, employeeNumber string) (attendance.AttendanceResponse, error) {
	now := s.now().In(s.location)
	date := attendance.TruncateToUTCDay(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeNumber, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	}
	if record.CheckoutTime != nil {
		return record.ToResponse(), attendance.ErrAlreadyCheckedOut
	}

	checkout := now
	record.CheckoutTime = &checkout

	dayType := attendance.ClassifyDayType(*record.CheckinTime, record.CheckoutTime, record.SessionType)
	if dayType == nil {
		half := attendance.HalfDay
		dayType = &half
	}
	record.AttendanceType = dayType

	stored, err := s.attendanceRepo.Update(ctx, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return stored.ToResponse(), nil
}

// Today implements attendance.Service.
func (s *service) Today(ctx context.Context, employeeNumber string) (attendance.AttendanceResponse, error) {
	now := s.now().In(s.location)
	date := attendance.TruncateToUTCDay(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeNumber, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	return s.present(*record, now), nil
}

// Calendar implements attendance.Service.
func (s *service) Calendar(ctx context.Context, employeeNumber string, year int, month *int) (attendance.CalendarResponse, error) {
	var start, end time.Time
	if month != nil {
		start = time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	} else {
		start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeNumber, start, end)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	now := s.now().In(s.location)

	resp := attendance.CalendarResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
		Statistics: attendance.CalendarStatistics{
			Year:  year,
			Month: month,
		},
	}

	for _, record := range records {
		view := s.present(record, now)
		resp.Attendances = append(resp.Attendances, view)

		resp.Statistics.TotalRecords++
		switch {
		case view.AttendanceType != nil && *view.AttendanceType == attendance.FullDay:
			resp.Statistics.TotalFullDays++
		case view.AttendanceType != nil && *view.AttendanceType == attendance.HalfDay:
			resp.Statistics.TotalHalfDays++
		default:
			resp.Statistics.NotCheckedOut++
		}
	}

	return resp, nil
}

// present applies the auto-completion read patch: an open record late in the
// evening, or a swept FULL_DAY without checkout, is shown as a completed
// full day without mutating storage.
func (s *service) present(record attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	resp := record.ToResponse()

	open := record.CheckinTime != nil && record.CheckoutTime == nil
	if !open {
		return resp
	}

	sweptFullDay := record.AttendanceType != nil && *record.AttendanceType == attendance.FullDay
	lateToday := now.Hour() >= 23 && record.Date.Equal(attendance.TruncateToUTCDay(now))

	if sweptFullDay || lateToday {
		full := attendance.FullDay
		resp.AttendanceType = &full
		resp.AutoCompleted = true
	}

	return resp
}

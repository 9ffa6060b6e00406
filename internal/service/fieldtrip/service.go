package fieldtrip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
)

// Transactor runs a function inside one database transaction, with the
// transaction carried on the context for the repositories to pick up.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	transactor     Transactor
	fieldTripRepo  fieldtrip.Repository
	attendanceRepo attendance.Repository
	directory      staff.Directory
	location       *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	transactor Transactor,
	fieldTripRepo fieldtrip.Repository,
	attendanceRepo attendance.Repository,
	directory staff.Directory,
	location *time.Location,
	logger *slog.Logger,
) fieldtrip.Service {
	return &service{
		transactor:     transactor,
		fieldTripRepo:  fieldTripRepo,
		attendanceRepo: attendanceRepo,
		directory:      directory,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}
}

// Replace implements fieldtrip.Service. Deactivation and creation run in one
// transaction so a failure never leaves the employee without their old trips.
func (s *service) Replace(ctx context.Context, req fieldtrip.SetFieldTripsRequest, actor string) ([]fieldtrip.FieldTripResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created []fieldtrip.FieldTrip

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.fieldTripRepo.DeactivateByEmployee(txCtx, req.EmployeeNumber); err != nil {
			return err
		}

		for _, input := range req.FieldTrips {
			start, _ := time.Parse("2006-01-02", input.StartDate)
			end, _ := time.Parse("2006-01-02", input.EndDate)
			windowStart, windowEnd := fieldtrip.NormalizeWindow(start, end)

			actorName := actor
			trip := fieldtrip.FieldTrip{
				ID:             uuid.NewString(),
				EmployeeNumber: req.EmployeeNumber,
				StartDate:      windowStart,
				EndDate:        windowEnd,
				Description:    input.Description,
				IsActive:       true,
				CreatedBy:      &actorName,
			}

			stored, err := s.fieldTripRepo.Create(txCtx, trip)
			if err != nil {
				return err
			}
			created = append(created, stored)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace field trips: %w", err)
	}

	s.logger.Info("field trips replaced",
		"employee_number", req.EmployeeNumber, "count", len(created), "actor", actor)

	responses := make([]fieldtrip.FieldTripResponse, 0, len(created))
	for _, trip := range created {
		responses = append(responses, trip.ToResponse())
	}

	return responses, nil
}

// ActiveByEmployee implements fieldtrip.Service.
func (s *service) ActiveByEmployee(ctx context.Context, employeeNumber string) ([]fieldtrip.FieldTripResponse, error) {
	trips, err := s.fieldTripRepo.ListActiveByEmployee(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}

	responses := make([]fieldtrip.FieldTripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, trip.ToResponse())
	}

	return responses, nil
}

// ActiveByUsername implements fieldtrip.Service.
func (s *service) ActiveByUsername(ctx context.Context, username string) ([]fieldtrip.FieldTripResponse, error) {
	member, err := s.directory.LookupByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}

	return s.ActiveByEmployee(ctx, member.EmployeeNumber)
}

// ActiveOn implements fieldtrip.Service.
func (s *service) ActiveOn(ctx context.Context, date time.Time) ([]fieldtrip.ActiveTripResponse, error) {
	trips, err := s.fieldTripRepo.ListActiveOn(ctx, date)
	if err != nil {
		return nil, err
	}

	responses := make([]fieldtrip.ActiveTripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, fieldtrip.ActiveTripResponse{
			FieldTripResponse: trip.ToResponse(),
			DaysRemaining:     trip.DaysRemaining(date),
		})
	}

	return responses, nil
}

// UpdateTrip implements fieldtrip.Service.
func (s *service) UpdateTrip(ctx context.Context, id string, req fieldtrip.UpdateFieldTripRequest) (fieldtrip.FieldTripResponse, error) {
	if err := req.Validate(); err != nil {
		return fieldtrip.FieldTripResponse{}, err
	}

	trip, err := s.fieldTripRepo.GetByID(ctx, id)
	if err != nil {
		return fieldtrip.FieldTripResponse{}, err
	}
	if trip == nil {
		return fieldtrip.FieldTripResponse{}, fieldtrip.ErrFieldTripNotFound
	}

	start := trip.StartDate
	end := trip.EndDate
	if req.StartDate != nil {
		start, _ = time.Parse("2006-01-02", *req.StartDate)
	}
	if req.EndDate != nil {
		end, _ = time.Parse("2006-01-02", *req.EndDate)
	}
	trip.StartDate, trip.EndDate = fieldtrip.NormalizeWindow(start, end)
	if trip.EndDate.Before(trip.StartDate) {
		return fieldtrip.FieldTripResponse{}, fieldtrip.ErrInvalidWindow
	}
	if req.Description != nil {
		trip.Description = req.Description
	}

	stored, err := s.fieldTripRepo.Update(ctx, *trip)
	if err != nil {
		return fieldtrip.FieldTripResponse{}, err
	}

	return stored.ToResponse(), nil
}

// Deactivate implements fieldtrip.Service.
func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.fieldTripRepo.DeactivateByID(ctx, id)
}

// TripCovering implements fieldtrip.Service.
func (s *service) TripCovering(ctx context.Context, employeeNumber string, at time.Time) (*fieldtrip.FieldTrip, error) {
	return s.fieldTripRepo.GetActiveCovering(ctx, employeeNumber, at)
}

// SweepExpired implements fieldtrip.Service.
func (s *service) SweepExpired(ctx context.Context, asOf time.Time) ([]fieldtrip.FieldTripResponse, error) {
	midnight := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	closed, err := s.fieldTripRepo.DeactivateEnded(ctx, midnight)
	if err != nil {
		return nil, err
	}

	if len(closed) > 0 {
		s.logger.Info("expired field trips deactivated", "count", len(closed))
	}

	responses := make([]fieldtrip.FieldTripResponse, 0, len(closed))
	for _, trip := range closed {
		responses = append(responses, trip.ToResponse())
	}

	return responses, nil
}

// AutoMarkAttendance implements fieldtrip.Service. Employees on an active
// trip get a canonical full working day: 09:30 in, 17:30 out, forenoon
// session, FULL_DAY.
func (s *service) AutoMarkAttendance(ctx context.Context, asOf time.Time) (fieldtrip.AutoMarkResult, error) {
	trips, err := s.fieldTripRepo.ListActiveOn(ctx, asOf)
	if err != nil {
		return fieldtrip.AutoMarkResult{}, err
	}

	date := attendance.TruncateToUTCDay(asOf)
	result := fieldtrip.AutoMarkResult{
		Marked:        []string{},
		AlreadyMarked: []string{},
	}
	seen := make(map[string]bool, len(trips))

	for _, trip := range trips {
		if seen[trip.EmployeeNumber] {
			continue
		}
		seen[trip.EmployeeNumber] = true

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, trip.EmployeeNumber, date)
		if err != nil {
			return fieldtrip.AutoMarkResult{}, err
		}
		if existing != nil {
			result.AlreadyMarked = append(result.AlreadyMarked, trip.EmployeeNumber)
			continue
		}

		checkin := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 9, 30, 0, 0, s.location)
		checkout := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 17, 30, 0, 0, s.location)
		fullDay := attendance.FullDay

		location := "Field Trip"
		if trip.Description != nil && *trip.Description != "" {
			location = "Field Trip - " + *trip.Description
		}

		record := attendance.Attendance{
			EmployeeNumber: trip.EmployeeNumber,
			Date:           date,
			CheckinTime:    &checkin,
			CheckoutTime:   &checkout,
			SessionType:    attendance.SessionFN,
			AttendanceType: &fullDay,
			LocationType:   attendance.LocationFieldTrip,
			TakenLocation:  &location,
		}

		if _, err := s.attendanceRepo.Create(ctx, record); err != nil {
			return fieldtrip.AutoMarkResult{}, err
		}
		result.Marked = append(result.Marked, trip.EmployeeNumber)
	}

	if len(result.Marked) > 0 {
		s.logger.Info("field trip attendance auto-marked",
			"marked", len(result.Marked), "already_marked", len(result.AlreadyMarked))
	}

	return result, nil
}

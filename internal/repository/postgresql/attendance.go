package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	employee_number, date, checkin_time, checkout_time, session_type,
	attendance_type, location_type, taken_location, latitude, longitude,
	location_address, county, state, postcode, photo_url, audio_url,
	audio_duration, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.EmployeeNumber, &att.Date, &att.CheckinTime, &att.CheckoutTime, &att.SessionType,
		&att.AttendanceType, &att.LocationType, &att.TakenLocation, &att.Latitude, &att.Longitude,
		&att.LocationAddress, &att.County, &att.State, &att.Postcode, &att.PhotoURL, &att.AudioURL,
		&att.AudioDuration, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return result, nil
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_number, date, checkin_time, checkout_time, session_type,
			attendance_type, location_type, taken_location, latitude, longitude,
			location_address, county, state, postcode, photo_url, audio_url,
			audio_duration
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeNumber,
		att.Date,
		att.CheckinTime,
		att.CheckoutTime,
		att.SessionType,
		att.AttendanceType,
		att.LocationType,
		att.TakenLocation,
		att.Latitude,
		att.Longitude,
		att.LocationAddress,
		att.County,
		att.State,
		att.Postcode,
		att.PhotoURL,
		att.AudioURL,
		att.AudioDuration,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_number = $1 AND date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeNumber, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			checkin_time = $3, checkout_time = $4, session_type = $5,
			attendance_type = $6, location_type = $7, taken_location = $8,
			latitude = $9, longitude = $10, location_address = $11,
			county = $12, state = $13, postcode = $14, photo_url = $15,
			audio_url = $16, audio_duration = $17, updated_at = NOW()
		WHERE employee_number = $1 AND date = $2
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeNumber,
		att.Date,
		att.CheckinTime,
		att.CheckoutTime,
		att.SessionType,
		att.AttendanceType,
		att.LocationType,
		att.TakenLocation,
		att.Latitude,
		att.Longitude,
		att.LocationAddress,
		att.County,
		att.State,
		att.Postcode,
		att.PhotoURL,
		att.AudioURL,
		att.AudioDuration,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, fmt.Errorf("attendance not found: %w", attendance.ErrAttendanceNotFound)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeNumber string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_number = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeNumber, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return collectAttendances(rows)
}

// ListByEmployeesAndRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]attendance.Attendance, error) {
	if len(employeeNumbers) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_number = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY employee_number, date ASC
	`

	rows, err := q.Query(ctx, query, employeeNumbers, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return collectAttendances(rows)
}

// ListRecent implements attendance.Repository.
func (a *attendanceRepository) ListRecent(ctx context.Context, employeeNumber string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_number = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendances: %w", err)
	}

	return collectAttendances(rows)
}

// ListOpenByDate implements attendance.Repository.
func (a *attendanceRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE date = $1
		  AND checkin_time IS NOT NULL
		  AND checkout_time IS NULL
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}

	return collectAttendances(rows)
}

// MarkFullDay implements attendance.Repository.
func (a *attendanceRepository) MarkFullDay(ctx context.Context, employeeNumber string, date time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET attendance_type = 'FULL_DAY', updated_at = NOW()
		WHERE employee_number = $1 AND date = $2 AND checkout_time IS NULL
	`

	if _, err := q.Exec(ctx, query, employeeNumber, date); err != nil {
		return fmt.Errorf("failed to mark full day: %w", err)
	}

	return nil
}

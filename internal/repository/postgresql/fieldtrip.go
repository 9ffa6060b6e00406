package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

type fieldTripRepository struct {
	db *database.DB
}

func NewFieldTripRepository(db *database.DB) fieldtrip.Repository {
	return &fieldTripRepository{db: db}
}

const fieldTripColumns = `
	id, employee_number, start_date, end_date, description, is_active,
	created_by, created_at, updated_at`

func scanFieldTrip(row pgx.Row) (fieldtrip.FieldTrip, error) {
	var trip fieldtrip.FieldTrip
	err := row.Scan(
		&trip.ID, &trip.EmployeeNumber, &trip.StartDate, &trip.EndDate,
		&trip.Description, &trip.IsActive, &trip.CreatedBy,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	return trip, err
}

func collectFieldTrips(rows pgx.Rows) ([]fieldtrip.FieldTrip, error) {
	defer rows.Close()

	var result []fieldtrip.FieldTrip
	for rows.Next() {
		trip, err := scanFieldTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field trip: %w", err)
		}
		result = append(result, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate field trips: %w", err)
	}

	return result, nil
}

// Create implements fieldtrip.Repository.
func (f *fieldTripRepository) Create(ctx context.Context, trip fieldtrip.FieldTrip) (fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		INSERT INTO field_trips (
			id, employee_number, start_date, end_date, description, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		trip.ID,
		trip.EmployeeNumber,
		trip.StartDate,
		trip.EndDate,
		trip.Description,
		trip.IsActive,
		trip.CreatedBy,
	).Scan(&trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fieldtrip.FieldTrip{}, fmt.Errorf("failed to create field trip: %w", err)
	}

	return trip, nil
}

// GetByID implements fieldtrip.Repository.
func (f *fieldTripRepository) GetByID(ctx context.Context, id string) (*fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `SELECT ` + fieldTripColumns + ` FROM field_trips WHERE id = $1`

	trip, err := scanFieldTrip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get field trip: %w", err)
	}

	return &trip, nil
}

// Update implements fieldtrip.Repository.
func (f *fieldTripRepository) Update(ctx context.Context, trip fieldtrip.FieldTrip) (fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		UPDATE field_trips SET
			start_date = $2, end_date = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, trip.ID, trip.StartDate, trip.EndDate, trip.Description).
		Scan(&trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fieldtrip.FieldTrip{}, fmt.Errorf("field trip not found: %w", fieldtrip.ErrFieldTripNotFound)
		}
		return fieldtrip.FieldTrip{}, fmt.Errorf("failed to update field trip: %w", err)
	}

	return trip, nil
}

// DeactivateByID implements fieldtrip.Repository.
func (f *fieldTripRepository) DeactivateByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, f.db)

	query := `UPDATE field_trips SET is_active = false, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate field trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fieldtrip.ErrFieldTripNotFound
	}

	return nil
}

// DeactivateByEmployee implements fieldtrip.Repository.
func (f *fieldTripRepository) DeactivateByEmployee(ctx context.Context, employeeNumber string) error {
	q := GetQuerier(ctx, f.db)

	query := `
		UPDATE field_trips
		SET is_active = false, updated_at = NOW()
		WHERE employee_number = $1 AND is_active = true
	`

	if _, err := q.Exec(ctx, query, employeeNumber); err != nil {
		return fmt.Errorf("failed to deactivate field trips: %w", err)
	}

	return nil
}

// ListActiveByEmployee implements fieldtrip.Repository.
func (f *fieldTripRepository) ListActiveByEmployee(ctx context.Context, employeeNumber string) ([]fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT ` + fieldTripColumns + `
		FROM field_trips
		WHERE employee_number = $1 AND is_active = true
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list field trips: %w", err)
	}

	return collectFieldTrips(rows)
}

// ListActiveOn implements fieldtrip.Repository.
func (f *fieldTripRepository) ListActiveOn(ctx context.Context, at time.Time) ([]fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT ` + fieldTripColumns + `
		FROM field_trips
		WHERE is_active = true AND start_date <= $1 AND end_date >= $1
		ORDER BY employee_number, start_date ASC
	`

	rows, err := q.Query(ctx, query, at)
	if err != nil {
		return nil, fmt.Errorf("failed to list active field trips: %w", err)
	}

	return collectFieldTrips(rows)
}

// GetActiveCovering implements fieldtrip.Repository.
func (f *fieldTripRepository) GetActiveCovering(ctx context.Context, employeeNumber string, at time.Time) (*fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT ` + fieldTripColumns + `
		FROM field_trips
		WHERE employee_number = $1 AND is_active = true
		  AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date ASC
		LIMIT 1
	`

	trip, err := scanFieldTrip(q.QueryRow(ctx, query, employeeNumber, at))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get covering field trip: %w", err)
	}

	return &trip, nil
}

// DeactivateEnded implements fieldtrip.Repository.
func (f *fieldTripRepository) DeactivateEnded(ctx context.Context, before time.Time) ([]fieldtrip.FieldTrip, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		UPDATE field_trips
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true AND end_date < $1
		RETURNING ` + fieldTripColumns + `
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate ended field trips: %w", err)
	}

	return collectFieldTrips(rows)
}

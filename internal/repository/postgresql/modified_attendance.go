package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

type modifiedAttendanceRepository struct {
	db *database.DB
}

func NewModifiedAttendanceRepository(db *database.DB) workflow.AdjustmentRepository {
	return &modifiedAttendanceRepository{db: db}
}

const modifiedAttendanceColumns = `
	id, employee_number, date, status, comment, pi_employee_number, created_at`

func scanModifiedAttendance(row pgx.Row) (workflow.ModifiedAttendance, error) {
	var adj workflow.ModifiedAttendance
	err := row.Scan(
		&adj.ID, &adj.EmployeeNumber, &adj.Date, &adj.Status,
		&adj.Comment, &adj.PIEmployeeNumber, &adj.CreatedAt,
	)
	return adj, err
}

// Create implements workflow.AdjustmentRepository.
func (m *modifiedAttendanceRepository) Create(ctx context.Context, adj workflow.ModifiedAttendance) (workflow.ModifiedAttendance, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO modified_attendances (
			employee_number, date, status, comment, pi_employee_number
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		adj.EmployeeNumber,
		adj.Date,
		adj.Status,
		adj.Comment,
		adj.PIEmployeeNumber,
	).Scan(&adj.ID, &adj.CreatedAt)
	if err != nil {
		return workflow.ModifiedAttendance{}, fmt.Errorf("failed to create modified attendance: %w", err)
	}

	return adj, nil
}

// ListByEmployee implements workflow.AdjustmentRepository.
func (m *modifiedAttendanceRepository) ListByEmployee(ctx context.Context, employeeNumber string) ([]workflow.ModifiedAttendance, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT ` + modifiedAttendanceColumns + `
		FROM modified_attendances
		WHERE employee_number = $1
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list modified attendances: %w", err)
	}
	defer rows.Close()

	var result []workflow.ModifiedAttendance
	for rows.Next() {
		adj, err := scanModifiedAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan modified attendance: %w", err)
		}
		result = append(result, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modified attendances: %w", err)
	}

	return result, nil
}

// ListByEmployeesAndRange implements workflow.AdjustmentRepository.
func (m *modifiedAttendanceRepository) ListByEmployeesAndRange(ctx context.Context, employeeNumbers []string, start, end time.Time) ([]workflow.ModifiedAttendance, error) {
	if len(employeeNumbers) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, m.db)

	query := `
		SELECT ` + modifiedAttendanceColumns + `
		FROM modified_attendances
		WHERE employee_number = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY employee_number, date ASC
	`

	rows, err := q.Query(ctx, query, employeeNumbers, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list modified attendances: %w", err)
	}
	defer rows.Close()

	var result []workflow.ModifiedAttendance
	for rows.Next() {
		adj, err := scanModifiedAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan modified attendance: %w", err)
		}
		result = append(result, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modified attendances: %w", err)
	}

	return result, nil
}

// Delete implements workflow.AdjustmentRepository.
func (m *modifiedAttendanceRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, m.db)

	tag, err := q.Exec(ctx, `DELETE FROM modified_attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete modified attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workflow.ErrAdjustmentNotFound
	}

	return nil
}

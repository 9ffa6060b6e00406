package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

type dataRequestRepository struct {
	db *database.DB
}

func NewDataRequestRepository(db *database.DB) workflow.RequestRepository {
	return &dataRequestRepository{db: db}
}

const dataRequestColumns = `
	id, pi_username, month, year, status, message, requested_at,
	submitted_at, downloaded_at, submitted_count, total_count,
	submitted_employee_ids, is_partial`

func scanDataRequest(row pgx.Row) (workflow.DataRequest, error) {
	var req workflow.DataRequest
	err := row.Scan(
		&req.ID, &req.PIUsername, &req.Month, &req.Year, &req.Status,
		&req.Message, &req.RequestedAt, &req.SubmittedAt, &req.DownloadedAt,
		&req.SubmittedCount, &req.TotalCount, &req.SubmittedEmployeeIDs,
		&req.IsPartial,
	)
	return req, err
}

func collectDataRequests(rows pgx.Rows) ([]workflow.DataRequest, error) {
	defer rows.Close()

	var result []workflow.DataRequest
	for rows.Next() {
		req, err := scanDataRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan data request: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate data requests: %w", err)
	}

	return result, nil
}

// Upsert implements workflow.RequestRepository.
func (d *dataRequestRepository) Upsert(ctx context.Context, req workflow.DataRequest) (workflow.DataRequest, error) {
	q := GetQuerier(ctx, d.db)

	// Re-requesting a period resets the row to PENDING and discards the
	// previous submission metadata.
	query := `
		INSERT INTO data_requests (
			pi_username, month, year, status, message, requested_at
		) VALUES ($1, $2, $3, 'PENDING', $4, NOW())
		ON CONFLICT (pi_username, month, year) DO UPDATE SET
			status = 'PENDING',
			message = EXCLUDED.message,
			requested_at = NOW(),
			submitted_at = NULL,
			downloaded_at = NULL,
			submitted_count = 0,
			total_count = 0,
			submitted_employee_ids = NULL,
			is_partial = false
		RETURNING ` + dataRequestColumns + `
	`

	stored, err := scanDataRequest(q.QueryRow(ctx, query, req.PIUsername, req.Month, req.Year, req.Message))
	if err != nil {
		return workflow.DataRequest{}, fmt.Errorf("failed to upsert data request: %w", err)
	}

	return stored, nil
}

// Get implements workflow.RequestRepository.
func (d *dataRequestRepository) Get(ctx context.Context, piUsername string, month, year int) (*workflow.DataRequest, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dataRequestColumns + `
		FROM data_requests
		WHERE pi_username = $1 AND month = $2 AND year = $3
	`

	req, err := scanDataRequest(q.QueryRow(ctx, query, piUsername, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get data request: %w", err)
	}

	return &req, nil
}

// Update implements workflow.RequestRepository.
func (d *dataRequestRepository) Update(ctx context.Context, req workflow.DataRequest) (workflow.DataRequest, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		UPDATE data_requests SET
			status = $2, submitted_at = $3, downloaded_at = $4,
			submitted_count = $5, total_count = $6,
			submitted_employee_ids = $7, is_partial = $8
		WHERE id = $1
		RETURNING ` + dataRequestColumns + `
	`

	stored, err := scanDataRequest(q.QueryRow(ctx, query,
		req.ID,
		req.Status,
		req.SubmittedAt,
		req.DownloadedAt,
		req.SubmittedCount,
		req.TotalCount,
		req.SubmittedEmployeeIDs,
		req.IsPartial,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workflow.DataRequest{}, fmt.Errorf("data request not found: %w", workflow.ErrRequestNotFound)
		}
		return workflow.DataRequest{}, fmt.Errorf("failed to update data request: %w", err)
	}

	return stored, nil
}

// ListPendingByPI implements workflow.RequestRepository.
func (d *dataRequestRepository) ListPendingByPI(ctx context.Context, piUsername string) ([]workflow.DataRequest, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dataRequestColumns + `
		FROM data_requests
		WHERE pi_username = $1 AND status = 'PENDING'
		ORDER BY requested_at DESC
	`

	rows, err := q.Query(ctx, query, piUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return collectDataRequests(rows)
}

// ListByPeriod implements workflow.RequestRepository.
func (d *dataRequestRepository) ListByPeriod(ctx context.Context, month, year int) ([]workflow.DataRequest, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dataRequestColumns + `
		FROM data_requests
		WHERE month = $1 AND year = $2
		ORDER BY pi_username ASC
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by period: %w", err)
	}

	return collectDataRequests(rows)
}

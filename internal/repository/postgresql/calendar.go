package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.Repository {
	return &calendarRepository{db: db}
}

// ListRange implements calendar.Repository.
func (c *calendarRepository) ListRange(ctx context.Context, start, end time.Time) ([]calendar.Entry, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT date, is_holiday, is_weekend, description
		FROM calendar_entries
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar entries: %w", err)
	}
	defer rows.Close()

	var result []calendar.Entry
	for rows.Next() {
		var entry calendar.Entry
		if err := rows.Scan(&entry.Date, &entry.IsHoliday, &entry.IsWeekend, &entry.Description); err != nil {
			return nil, fmt.Errorf("failed to scan calendar entry: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar entries: %w", err)
	}

	return result, nil
}

// ListHolidays implements calendar.Repository.
func (c *calendarRepository) ListHolidays(ctx context.Context, year int) ([]calendar.Entry, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	q := GetQuerier(ctx, c.db)

	query := `
		SELECT date, is_holiday, is_weekend, description
		FROM calendar_entries
		WHERE date >= $1 AND date <= $2 AND is_holiday = true
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var result []calendar.Entry
	for rows.Next() {
		var entry calendar.Entry
		if err := rows.Scan(&entry.Date, &entry.IsHoliday, &entry.IsWeekend, &entry.Description); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return result, nil
}

// CountNonWorking implements calendar.Repository.
func (c *calendarRepository) CountNonWorking(ctx context.Context, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT COUNT(*)
		FROM calendar_entries
		WHERE date >= $1 AND date <= $2 AND (is_holiday = true OR is_weekend = true)
	`

	var count int
	if err := q.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count non-working days: %w", err)
	}

	return count, nil
}

// Upsert implements calendar.Repository.
func (c *calendarRepository) Upsert(ctx context.Context, entry calendar.Entry) error {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO calendar_entries (date, is_holiday, is_weekend, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			is_holiday = EXCLUDED.is_holiday,
			is_weekend = EXCLUDED.is_weekend,
			description = EXCLUDED.description
	`

	if _, err := q.Exec(ctx, query, entry.Date, entry.IsHoliday, entry.IsWeekend, entry.Description); err != nil {
		return fmt.Errorf("failed to upsert calendar entry: %w", err)
	}

	return nil
}

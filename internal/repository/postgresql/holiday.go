package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// ListByRange implements holiday.HolidayRepository. Both bounds are inclusive
// calendar dates.
func (h *holidayRepository) ListByRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, is_public, is_mercantile, is_bank, summary, source, created_at, updated_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, calendarDate(start), calendarDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		err := rows.Scan(
			&hol.ID, &hol.Date, &hol.Categories.Public, &hol.Categories.Mercantile, &hol.Categories.Bank,
			&hol.Summary, &hol.Source, &hol.CreatedAt, &hol.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, hol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

// CountByYear implements holiday.HolidayRepository.
func (h *holidayRepository) CountByYear(ctx context.Context, year int) (int, error) {
	q := GetQuerier(ctx, h.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM holidays WHERE EXTRACT(YEAR FROM date) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count holidays for %d: %w", year, err)
	}
	return count, nil
}

// UpsertMany implements holiday.HolidayRepository. A date that already exists
// has its categories replaced.
func (h *holidayRepository) UpsertMany(ctx context.Context, holidays []holiday.Holiday) (int, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (id, date, is_public, is_mercantile, is_bank, summary, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date) DO UPDATE SET
			is_public = EXCLUDED.is_public,
			is_mercantile = EXCLUDED.is_mercantile,
			is_bank = EXCLUDED.is_bank,
			summary = EXCLUDED.summary,
			source = EXCLUDED.source,
			updated_at = NOW()
	`

	written := 0
	for _, hol := range holidays {
		id, err := uuid.NewV7()
		if err != nil {
			return written, fmt.Errorf("failed to generate holiday id: %w", err)
		}
		_, err = q.Exec(ctx, query,
			id.String(), calendarDate(hol.Date), hol.Categories.Public, hol.Categories.Mercantile, hol.Categories.Bank,
			hol.Summary, hol.Source,
		)
		if err != nil {
			return written, fmt.Errorf("failed to upsert holiday %s: %w", hol.Key(), err)
		}
		written++
	}
	return written, nil
}

// calendarDate keeps the calendar date of t and drops its location, so the
// DATE column never shifts a day.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

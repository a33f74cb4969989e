package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

// CreateMany implements attendance.PunchRepository. The batch runs on the
// querier from ctx so it joins an open transaction.
func (p *punchRepository) CreateMany(ctx context.Context, punches []attendance.Punch) (int, error) {
	if len(punches) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO attendance_punches (id, company_id, employee_id, punched_at, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, punched_at) DO NOTHING
	`

	imported := 0
	for _, punch := range punches {
		tag, err := q.Exec(ctx, query, punch.ID, punch.CompanyID, punch.EmployeeID, punch.PunchedAt, punch.Source)
		if err != nil {
			return imported, fmt.Errorf("failed to insert punch at %s: %w", punch.PunchedAt.Format(time.RFC3339), err)
		}
		imported += int(tag.RowsAffected())
	}
	return imported, nil
}

// ListByEmployee implements attendance.PunchRepository.
func (p *punchRepository) ListByEmployee(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, company_id, employee_id, punched_at, source, created_at
		FROM attendance_punches
		WHERE company_id = $1 AND employee_id = $2 AND punched_at >= $3 AND punched_at < $4
		ORDER BY punched_at
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	punches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Punch, error) {
		var punch attendance.Punch
		err := row.Scan(&punch.ID, &punch.CompanyID, &punch.EmployeeID, &punch.PunchedAt, &punch.Source, &punch.CreatedAt)
		return punch, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan punches: %w", err)
	}
	return punches, nil
}

// ListTimesByEmployees implements attendance.PunchRepository.
func (p *punchRepository) ListTimesByEmployees(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) (map[string][]time.Time, error) {
	result := make(map[string][]time.Time, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT employee_id, punched_at
		FROM attendance_punches
		WHERE company_id = $1 AND employee_id = ANY($2) AND punched_at >= $3 AND punched_at < $4
		ORDER BY employee_id, punched_at
	`

	rows, err := q.Query(ctx, query, companyID, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches for employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			employeeID string
			punchedAt  time.Time
		)
		if err := rows.Scan(&employeeID, &punchedAt); err != nil {
			return nil, err
		}
		result[employeeID] = append(result[employeeID], punchedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

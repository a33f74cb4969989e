package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salarySelect = `
	SELECT s.id, s.company_id, s.employee_id, s.period_year, s.period_month, s.basic_salary,
		   s.no_pay_amount, s.no_pay_reason, s.ot_amount, s.ot_reason,
		   s.payment_structure, s.in_out, s.advance_amount, s.final_salary, s.remark,
		   s.created_at, s.updated_at,
		   e.full_name AS employee_name, e.employee_code, e.epf_number
	FROM salaries s
	JOIN employees e ON s.employee_id = e.id
`

func scanSalary(row pgx.Row) (salary.SalaryRecord, error) {
	var (
		rec              salary.SalaryRecord
		month            int
		structure, inOut []byte
	)
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Period.Year, &month, &rec.Basic,
		&rec.NoPay.Amount, &rec.NoPay.Reason, &rec.OT.Amount, &rec.OT.Reason,
		&structure, &inOut, &rec.AdvanceAmount, &rec.FinalSalary, &rec.Remark,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode, &rec.EPFNumber,
	)
	if err != nil {
		return salary.SalaryRecord{}, err
	}
	rec.Period.Month = time.Month(month)

	if len(structure) > 0 {
		if err := json.Unmarshal(structure, &rec.PaymentStructure); err != nil {
			return salary.SalaryRecord{}, fmt.Errorf("decode payment structure of salary %s: %w", rec.ID, err)
		}
	}
	if len(inOut) > 0 {
		if err := json.Unmarshal(inOut, &rec.InOut); err != nil {
			return salary.SalaryRecord{}, fmt.Errorf("decode in/out records of salary %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string, companyID string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := salarySelect + ` WHERE s.id = $1 AND s.company_id = $2`

	rec, err := scanSalary(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	return rec, nil
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, period salary.Period, companyID string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := salarySelect + `
		WHERE s.employee_id = $1 AND s.period_year = $2 AND s.period_month = $3 AND s.company_id = $4
	`

	rec, err := scanSalary(q.QueryRow(ctx, query, employeeID, period.Year, int(period.Month), companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to get salary record for employee %s: %w", employeeID, err)
	}
	return rec, nil
}

func (r *salaryRepository) List(ctx context.Context, companyID string, filter salary.SalaryFilter) ([]salary.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE s.company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Period != "" {
		period, err := salary.ParsePeriod(filter.Period)
		if err != nil {
			return nil, 0, err
		}
		where += fmt.Sprintf(" AND s.period_year = $%d AND s.period_month = $%d", argIdx, argIdx+1)
		args = append(args, period.Year, int(period.Month))
		argIdx += 2
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM salaries s` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := salarySelect + where + fmt.Sprintf(`
		ORDER BY s.period_year DESC, s.period_month DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records, err := collectSalaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, totalCount, nil
}

func (r *salaryRepository) ListByPeriod(ctx context.Context, companyID string, period salary.Period) ([]salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := salarySelect + `
		WHERE s.company_id = $1 AND s.period_year = $2 AND s.period_month = $3
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID, period.Year, int(period.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for %s: %w", period, err)
	}
	defer rows.Close()

	return collectSalaries(rows)
}

func collectSalaries(rows pgx.Rows) ([]salary.SalaryRecord, error) {
	var records []salary.SalaryRecord
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert writes the computed fields keyed by (employee, period). Advance and
// remark are only set on insert; regeneration keeps what was edited.
func (r *salaryRepository) Upsert(ctx context.Context, record salary.SalaryRecord) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	structure, err := json.Marshal(record.PaymentStructure)
	if err != nil {
		return salary.SalaryRecord{}, fmt.Errorf("encode payment structure: %w", err)
	}
	inOut, err := json.Marshal(record.InOut)
	if err != nil {
		return salary.SalaryRecord{}, fmt.Errorf("encode in/out records: %w", err)
	}

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return salary.SalaryRecord{}, fmt.Errorf("failed to generate salary id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		INSERT INTO salaries (
			id, company_id, employee_id, period_year, period_month, basic_salary,
			no_pay_amount, no_pay_reason, ot_amount, ot_reason,
			payment_structure, in_out, advance_amount, final_salary, remark
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, period_year, period_month) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			no_pay_amount = EXCLUDED.no_pay_amount,
			no_pay_reason = EXCLUDED.no_pay_reason,
			ot_amount = EXCLUDED.ot_amount,
			ot_reason = EXCLUDED.ot_reason,
			payment_structure = EXCLUDED.payment_structure,
			in_out = EXCLUDED.in_out,
			final_salary = EXCLUDED.final_salary,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.EmployeeID, record.Period.Year, int(record.Period.Month), record.Basic,
		record.NoPay.Amount, record.NoPay.Reason, record.OT.Amount, record.OT.Reason,
		structure, inOut, record.AdvanceAmount, record.FinalSalary, record.Remark,
	).Scan(&id)
	if err != nil {
		return salary.SalaryRecord{}, fmt.Errorf("failed to upsert salary for employee %s: %w", record.EmployeeID, err)
	}

	return r.GetByID(ctx, id, record.CompanyID)
}

func (r *salaryRepository) UpdateEditable(ctx context.Context, record salary.SalaryRecord) error {
	q := GetQuerier(ctx, r.db)

	inOut, err := json.Marshal(record.InOut)
	if err != nil {
		return fmt.Errorf("encode in/out records: %w", err)
	}

	query := `
		UPDATE salaries
		SET advance_amount = $1, remark = $2, in_out = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING id
	`

	var updatedID string
	err = q.QueryRow(ctx, query, record.AdvanceAmount, record.Remark, inOut, record.ID, record.CompanyID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to update salary record %s: %w", record.ID, err)
	}
	return nil
}

package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, epf_number, basic_salary, divide_by, ot_method,
	shifts, working_days, payment_structure, employment_status, created_at, updated_at`

// scanEmployee decodes one row selected with employeeColumns. The schedule
// and payment structure are stored as JSONB.
func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp                            employee.Employee
		shifts, workingDays, structure []byte
	)
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.EPFNumber,
		&emp.Basic, &emp.DivideBy, &emp.OTMethod,
		&shifts, &workingDays, &structure, &emp.EmploymentStatus,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if len(shifts) > 0 {
		if err := json.Unmarshal(shifts, &emp.Shifts); err != nil {
			return employee.Employee{}, fmt.Errorf("decode shifts of employee %s: %w", emp.ID, err)
		}
	}
	if len(workingDays) > 0 {
		if err := json.Unmarshal(workingDays, &emp.WorkingDays); err != nil {
			return employee.Employee{}, fmt.Errorf("decode working days of employee %s: %w", emp.ID, err)
		}
	}
	if len(structure) > 0 {
		if err := json.Unmarshal(structure, &emp.PaymentStructure); err != nil {
			return employee.Employee{}, fmt.Errorf("decode payment structure of employee %s: %w", emp.ID, err)
		}
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = $2 AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// GetByIDs implements employee.EmployeeRepository. Unknown IDs are skipped;
// callers compare lengths to report them.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND id = ANY($2) AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by ids: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

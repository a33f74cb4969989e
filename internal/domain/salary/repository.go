package salary

import "context"

// SalaryRepository persists salary records. All methods include companyID
// so one company can never read another's payroll.
type SalaryRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (SalaryRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, period Period, companyID string) (SalaryRecord, error)
	List(ctx context.Context, companyID string, filter SalaryFilter) ([]SalaryRecord, int64, error)
	ListByPeriod(ctx context.Context, companyID string, period Period) ([]SalaryRecord, error)

	// Upsert writes the computed record, keyed by (employee, period).
	Upsert(ctx context.Context, record SalaryRecord) (SalaryRecord, error)
	// UpdateEditable writes advance, remark and in/out remarks only.
	UpdateEditable(ctx context.Context, record SalaryRecord) error
}

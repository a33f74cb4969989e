package employee

import "context"

// EmployeeRepository reads payroll profiles. Profile editing lives in the
// CRUD layer and is not part of this service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}

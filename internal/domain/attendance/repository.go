package attendance

import (
	"context"
	"time"
)

// PunchRepository defines data access methods for raw punches.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PunchRepository interface {
	// CreateMany inserts punches, skipping exact duplicates, and returns how
	// many rows were written.
	CreateMany(ctx context.Context, punches []Punch) (int, error)

	// ListByEmployee returns punches in [from, to) ordered by time.
	ListByEmployee(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]Punch, error)

	// ListTimesByEmployees returns punch times in [from, to) grouped by employee.
	ListTimesByEmployees(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) (map[string][]time.Time, error)
}

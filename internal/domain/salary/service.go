package salary

import "context"

type SalaryService interface {
	// Generation
	GenerateForPeriod(ctx context.Context, req GeneratePeriodRequest) (GenerateBatchResponse, error)
	GenerateForEmployee(ctx context.Context, req GenerateEmployeeRequest) (SalaryResponse, error)
	Preview(ctx context.Context, req GenerateEmployeeRequest) (PreviewResponse, error)

	// Records
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (SalaryResponse, error)

	// Remittance
	GetRemittance(ctx context.Context, period string) (RemittanceResponse, error)
}

package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type SalaryServiceImpl struct {
	tx           database.Transactor
	engine       *Engine
	employeeRepo employee.EmployeeRepository
	punchRepo    attendance.PunchRepository
	salaryRepo   salary.SalaryRepository
	logger       *slog.Logger
}

func NewSalaryService(
	tx database.Transactor,
	engine *Engine,
	employeeRepo employee.EmployeeRepository,
	punchRepo attendance.PunchRepository,
	salaryRepo salary.SalaryRepository,
	logger *slog.Logger,
) salary.SalaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalaryServiceImpl{
		tx:           tx,
		engine:       engine,
		employeeRepo: employeeRepo,
		punchRepo:    punchRepo,
		salaryRepo:   salaryRepo,
		logger:       logger,
	}
}

// Helper to get company_id from JWT context
func getCompanyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", jwt.ErrInvalidToken, err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", jwt.ErrCompanyRequired
	}

	return companyID, nil
}

// punchWindow widens the period by a day on each side so sessions crossing
// midnight at the period edges still find their punches.
func (s *SalaryServiceImpl) punchWindow(period salary.Period) (time.Time, time.Time) {
	loc := s.engine.Config().location()
	return period.Start(loc).AddDate(0, 0, -1), period.End(loc).AddDate(0, 0, 2)
}

// ========== GENERATION ==========

func (s *SalaryServiceImpl) GenerateForPeriod(ctx context.Context, req salary.GeneratePeriodRequest) (salary.GenerateBatchResponse, error) {
	period, err := req.Validate()
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, companyID, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	}
	if err != nil {
		return salary.GenerateBatchResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}

	from, to := s.punchWindow(period)
	punches, err := s.punchRepo.ListTimesByEmployees(ctx, companyID, employeeIDs, from, to)
	if err != nil {
		return salary.GenerateBatchResponse{}, fmt.Errorf("failed to get punches: %w", err)
	}

	existing, err := s.salaryRepo.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return salary.GenerateBatchResponse{}, fmt.Errorf("failed to get existing salaries: %w", err)
	}
	existingByEmployee := make(map[string]*salary.SalaryRecord, len(existing))
	for i := range existing {
		existingByEmployee[existing[i].EmployeeID] = &existing[i]
	}

	inputs := make([]GenerateInput, 0, len(employees))
	for _, emp := range employees {
		inputs = append(inputs, GenerateInput{
			Employee:        emp,
			Period:          period,
			Attendance:      salary.Attendance{Punches: punches[emp.ID]},
			GenerateMissing: req.Generate,
			NoPayPerDay:     req.NoPayPerDay,
			Existing:        existingByEmployee[emp.ID],
		})
	}

	outcomes, err := s.engine.GenerateBatch(ctx, period, inputs)
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	resp := salary.GenerateBatchResponse{
		Period:   period.String(),
		Outcomes: make([]salary.OutcomeResponse, 0, len(outcomes)),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, o := range outcomes {
			if o.Failed() {
				resp.Failed++
				resp.Outcomes = append(resp.Outcomes, salary.OutcomeResponse{
					EmployeeID: o.EmployeeID,
					Message:    o.Message,
				})
				continue
			}

			saved, err := s.salaryRepo.Upsert(ctx, *o.Salary)
			if err != nil {
				return fmt.Errorf("failed to save salary for employee %s: %w", o.EmployeeID, err)
			}
			out := salary.ToResponse(saved)
			resp.Generated++
			resp.Outcomes = append(resp.Outcomes, salary.OutcomeResponse{
				EmployeeID: o.EmployeeID,
				Success:    true,
				Salary:     &out,
			})
		}
		return nil
	})
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	s.logger.Info("salaries generated",
		slog.String("company_id", companyID),
		slog.String("period", period.String()),
		slog.Int("generated", resp.Generated),
		slog.Int("failed", resp.Failed),
	)

	return resp, nil
}

// loadSingle gathers the inputs for one employee.
func (s *SalaryServiceImpl) loadSingle(ctx context.Context, req salary.GenerateEmployeeRequest) (GenerateInput, error) {
	period, err := req.Validate()
	if err != nil {
		return GenerateInput{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return GenerateInput{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return GenerateInput{}, err
	}

	from, to := s.punchWindow(period)
	punches, err := s.punchRepo.ListTimesByEmployees(ctx, companyID, []string{emp.ID}, from, to)
	if err != nil {
		return GenerateInput{}, fmt.Errorf("failed to get punches: %w", err)
	}

	var existing *salary.SalaryRecord
	current, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, period, companyID)
	switch {
	case err == nil:
		existing = &current
	case !errors.Is(err, salary.ErrSalaryNotFound):
		return GenerateInput{}, fmt.Errorf("failed to get existing salary: %w", err)
	}

	// Calendar errors abort the request instead of becoming an outcome message.
	cal, err := s.engine.Calendar(ctx, period)
	if err != nil {
		return GenerateInput{}, err
	}

	return GenerateInput{
		Employee:        emp,
		Period:          period,
		Attendance:      salary.Attendance{Punches: punches[emp.ID]},
		Calendar:        &cal,
		GenerateMissing: req.Generate,
		NoPayPerDay:     req.NoPayPerDay,
		Existing:        existing,
	}, nil
}

func (s *SalaryServiceImpl) GenerateForEmployee(ctx context.Context, req salary.GenerateEmployeeRequest) (salary.SalaryResponse, error) {
	in, err := s.loadSingle(ctx, req)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	outcome := s.engine.GenerateSalaryForEmployee(ctx, in)
	if outcome.Failed() {
		return salary.SalaryResponse{}, outcome.Err()
	}

	saved, err := s.salaryRepo.Upsert(ctx, *outcome.Salary)
	if err != nil {
		return salary.SalaryResponse{}, fmt.Errorf("failed to save salary: %w", err)
	}

	return salary.ToResponse(saved), nil
}

func (s *SalaryServiceImpl) Preview(ctx context.Context, req salary.GenerateEmployeeRequest) (salary.PreviewResponse, error) {
	in, err := s.loadSingle(ctx, req)
	if err != nil {
		return salary.PreviewResponse{}, err
	}

	result, err := s.engine.ProcessAttendance(ctx, in)
	if err != nil {
		return salary.PreviewResponse{}, err
	}

	return salary.PreviewResponse{
		EmployeeID: in.Employee.ID,
		Period:     in.Period.String(),
		InOut:      result.InOutProcessed,
		OTHours:    result.OTHours,
		OT:         salary.Adjustment{Amount: result.OT, Reason: result.OTReason},
		NoPay:      salary.Adjustment{Amount: result.NoPay, Reason: result.NoPayReason},
		AbsentDays: result.AbsentDays,
	}, nil
}

// ========== RECORDS ==========

func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return salary.ToResponse(record), nil
}

func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return salary.ListSalaryResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return salary.ListSalaryResponse{}, err
	}

	records, total, err := s.salaryRepo.List(ctx, companyID, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, err
	}

	data := make([]salary.SalaryResponse, 0, len(records))
	for _, r := range records {
		data = append(data, salary.ToResponse(r))
	}

	return salary.ListSalaryResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateSalary applies user edits. Computed fields are left untouched.
func (s *SalaryServiceImpl) UpdateSalary(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	var updated salary.SalaryRecord
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.salaryRepo.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return err
		}

		if req.AdvanceAmount != nil {
			record.AdvanceAmount = *req.AdvanceAmount
		}
		if req.Remark != nil {
			record.Remark = *req.Remark
		}
		for _, rr := range req.RecordRemarks {
			if rr.Index >= len(record.InOut) {
				return fmt.Errorf("%w: %d", salary.ErrRecordIndexOutOfRange, rr.Index)
			}
			record.InOut[rr.Index].Remark = rr.Remark
		}

		if err := s.salaryRepo.UpdateEditable(ctx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return salary.ToResponse(updated), nil
}

// ========== REMITTANCE ==========

func (s *SalaryServiceImpl) GetRemittance(ctx context.Context, periodStr string) (salary.RemittanceResponse, error) {
	period, err := salary.ParsePeriod(periodStr)
	if err != nil {
		return salary.RemittanceResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return salary.RemittanceResponse{}, err
	}

	records, err := s.salaryRepo.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return salary.RemittanceResponse{}, err
	}

	return Remittance(period, records, s.engine.Config()), nil
}

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	punchRepo    attendance.PunchRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	logger       *slog.Logger
}

func NewAttendanceService(
	punchRepo attendance.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
	logger *slog.Logger,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
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

// ImportPunches stores raw punches for one employee. Exact duplicates of
// stored punches are skipped by the repository.
func (s *AttendanceServiceImpl) ImportPunches(ctx context.Context, req attendance.ImportPunchesRequest) (attendance.ImportPunchesResponse, error) {
	times, err := req.Validate(s.loc)
	if err != nil {
		return attendance.ImportPunchesResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return attendance.ImportPunchesResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return attendance.ImportPunchesResponse{}, err
	}

	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })

	punches := make([]attendance.Punch, 0, len(times))
	for _, t := range times {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.ImportPunchesResponse{}, fmt.Errorf("failed to generate punch id: %w", err)
		}
		punches = append(punches, attendance.Punch{
			ID:         id.String(),
			CompanyID:  companyID,
			EmployeeID: req.EmployeeID,
			PunchedAt:  t,
			Source:     attendance.Source(req.Source),
		})
	}

	imported, err := s.punchRepo.CreateMany(ctx, punches)
	if err != nil {
		return attendance.ImportPunchesResponse{}, err
	}

	s.logger.Info("punches imported",
		slog.String("company_id", companyID),
		slog.String("employee_id", req.EmployeeID),
		slog.Int("received", len(punches)),
		slog.Int("imported", imported),
	)

	return attendance.ImportPunchesResponse{
		EmployeeID: req.EmployeeID,
		Received:   len(punches),
		Imported:   imported,
	}, nil
}

func (s *AttendanceServiceImpl) ListPunches(ctx context.Context, req attendance.ListPunchesRequest) (attendance.ListPunchesResponse, error) {
	month, err := req.Validate()
	if err != nil {
		return attendance.ListPunchesResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return attendance.ListPunchesResponse{}, err
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	punches, err := s.punchRepo.ListByEmployee(ctx, companyID, req.EmployeeID, from, to)
	if err != nil {
		return attendance.ListPunchesResponse{}, err
	}

	resp := attendance.ListPunchesResponse{
		EmployeeID: req.EmployeeID,
		Period:     req.Period,
		Punches:    make([]attendance.PunchResponse, 0, len(punches)),
	}
	for _, p := range punches {
		resp.Punches = append(resp.Punches, attendance.PunchResponse{
			ID:        p.ID,
			PunchedAt: p.PunchedAt.In(s.loc),
			Source:    string(p.Source),
		})
	}
	return resp, nil
}

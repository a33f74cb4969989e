package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "0190d2a4-0000-7000-8000-000000000001"
	testEmployeeID = "0190d2a4-5b1e-7c3a-9f00-1a2b3c4d5e6f"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func companyContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"company_id": testCompanyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type memoryPunchRepo struct {
	punches []attendance.Punch
}

func (r *memoryPunchRepo) CreateMany(ctx context.Context, punches []attendance.Punch) (int, error) {
	n := 0
	for _, p := range punches {
		dup := false
		for _, existing := range r.punches {
			if existing.EmployeeID == p.EmployeeID && existing.PunchedAt.Equal(p.PunchedAt) {
				dup = true
				break
			}
		}
		if !dup {
			r.punches = append(r.punches, p)
			n++
		}
	}
	return n, nil
}

func (r *memoryPunchRepo) ListByEmployee(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range r.punches {
		if p.CompanyID == companyID && p.EmployeeID == employeeID && !p.PunchedAt.Before(from) && p.PunchedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPunchRepo) ListTimesByEmployees(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) (map[string][]time.Time, error) {
	return nil, nil
}

type singleEmployeeRepo struct{}

func (singleEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	if id == testEmployeeID && companyID == testCompanyID {
		return employee.Employee{ID: id, CompanyID: companyID}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (singleEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (singleEmployeeRepo) GetByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func TestAttendanceService_ImportAndList(t *testing.T) {
	repo := &memoryPunchRepo{}
	loc := time.FixedZone("+0530", 5*3600+1800)
	svc := NewAttendanceService(repo, singleEmployeeRepo{}, loc, testLogger)
	ctx := companyContext(t)

	resp, err := svc.ImportPunches(ctx, attendance.ImportPunchesRequest{
		EmployeeID: testEmployeeID,
		Punches: []attendance.PunchInput{
			{Date: "02-05-2024", Time: "17:05"},
			{Date: "02-05-2024", Time: "07:58"},
			{Timestamp: "2024-06-01T08:00:00+05:30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Imported)

	again, err := svc.ImportPunches(ctx, attendance.ImportPunchesRequest{
		EmployeeID: testEmployeeID,
		Punches:    []attendance.PunchInput{{Timestamp: "2024-05-02T07:58:00+05:30"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Received)
	assert.Equal(t, 0, again.Imported, "duplicates are skipped")

	list, err := svc.ListPunches(ctx, attendance.ListPunchesRequest{EmployeeID: testEmployeeID, Period: "2024-05"})
	require.NoError(t, err)
	require.Len(t, list.Punches, 2)
	assert.Equal(t, 7, list.Punches[0].PunchedAt.Hour())
	assert.Equal(t, "import", list.Punches[0].Source)
}

func TestAttendanceService_ImportErrors(t *testing.T) {
	svc := NewAttendanceService(&memoryPunchRepo{}, singleEmployeeRepo{}, time.UTC, testLogger)
	ctx := companyContext(t)

	_, err := svc.ImportPunches(ctx, attendance.ImportPunchesRequest{EmployeeID: testEmployeeID})
	assert.Error(t, err)

	_, err = svc.ImportPunches(ctx, attendance.ImportPunchesRequest{
		EmployeeID: "0190d2a4-5b1e-7c3a-9f00-00000000dead",
		Punches:    []attendance.PunchInput{{Date: "02-05-2024", Time: "08:00"}},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ListPunches(ctx, attendance.ListPunchesRequest{EmployeeID: testEmployeeID, Period: "05-2024"})
	assert.Error(t, err)
}

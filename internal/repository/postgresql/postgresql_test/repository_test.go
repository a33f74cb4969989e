package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID  = "0190d2a4-0000-7000-8000-000000000001"
	employeeID = "0190d2a4-5b1e-7c3a-9f00-1a2b3c4d5e6f"
)

func seedEmployee(t *testing.T, setup *TestDatabaseSetup) {
	t.Helper()
	_, err := setup.DB.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, employee_code, full_name, epf_number, basic_salary, divide_by, ot_method,
			shifts, working_days, payment_structure)
		VALUES ($1, $2, 'E001', 'Nimal Perera', '1042', 48000, 240, 'calc',
			'[{"start":"08:00","end":"17:00"}]', '{"sat":"half","sun":"off"}',
			'{"additions":[{"name":"Transport","amount":"2000-5000"}],"deductions":[{"name":"Welfare","amount":"500"}]}')
	`, employeeID, companyID)
	require.NoError(t, err)
}

func TestEmployeeRepository_DecodesProfile(t *testing.T) {
	setup := NewTestDatabase(t)
	seedEmployee(t, setup)
	repo := postgresql.NewEmployeeRepository(setup.DB)
	ctx := context.Background()

	emp, err := repo.GetByID(ctx, employeeID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "E001", emp.EmployeeCode)
	assert.True(t, emp.Basic.Equal(decimal.NewFromInt(48000)))
	require.Len(t, emp.Shifts, 1)
	assert.Equal(t, "08:00", emp.Shifts[0].Start.String())
	assert.Equal(t, employee.DayTypeOff, emp.WorkingDays.For(time.Sunday))
	assert.Equal(t, employee.AmountRange, emp.PaymentStructure.Additions[0].Amount.Kind)

	_, err = repo.GetByID(ctx, employeeID, "0190d2a4-0000-7000-8000-000000000002")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	active, err := repo.GetActiveByCompanyID(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestPunchRepository_SkipsDuplicates(t *testing.T) {
	setup := NewTestDatabase(t)
	seedEmployee(t, setup)
	repo := postgresql.NewPunchRepository(setup.DB)
	ctx := context.Background()

	at := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	punches := []attendance.Punch{
		{ID: "0190d2a4-5b1e-7c3a-9f00-000000000001", CompanyID: companyID, EmployeeID: employeeID, PunchedAt: at, Source: attendance.SourceImport},
		{ID: "0190d2a4-5b1e-7c3a-9f00-000000000002", CompanyID: companyID, EmployeeID: employeeID, PunchedAt: at.Add(9 * time.Hour), Source: attendance.SourceImport},
	}
	n, err := repo.CreateMany(ctx, punches)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	punches[0].ID = "0190d2a4-5b1e-7c3a-9f00-000000000003"
	n, err = repo.CreateMany(ctx, punches[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	times, err := repo.ListTimesByEmployees(ctx, companyID, []string{employeeID}, at.AddDate(0, 0, -1), at.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, times[employeeID], 2)
}

func TestHolidayRepository_UpsertAndCount(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewHolidayRepository(setup.DB)
	ctx := context.Background()

	vesak := time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC)
	_, err := repo.UpsertMany(ctx, []holiday.Holiday{
		{Date: vesak, Categories: holiday.Categories{Public: true, Bank: true}, Summary: "Vesak Full Moon Poya Day"},
	})
	require.NoError(t, err)
	_, err = repo.UpsertMany(ctx, []holiday.Holiday{
		{Date: vesak, Categories: holiday.Categories{Public: true, Bank: true, Mercantile: true}, Summary: "Vesak Full Moon Poya Day"},
	})
	require.NoError(t, err)

	count, err := repo.CountByYear(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	list, err := repo.ListByRange(ctx, vesak.AddDate(0, 0, -22), vesak.AddDate(0, 0, 8))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Categories.Mercantile)
}

func TestSalaryRepository_UpsertKeepsEdits(t *testing.T) {
	setup := NewTestDatabase(t)
	seedEmployee(t, setup)
	repo := postgresql.NewSalaryRepository(setup.DB)
	ctx := context.Background()

	period := salary.Period{Year: 2024, Month: time.May}
	record := salary.SalaryRecord{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Period:     period,
		Basic:      decimal.NewFromInt(48000),
		PaymentStructure: salary.PaymentStructure{
			Deductions: []salary.PaymentLine{{Name: salary.EPFLineName, Amount: decimal.NewFromInt(3840)}},
		},
		InOut: []salary.InOutRecord{{
			In:  time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
			Out: time.Date(2024, 5, 2, 17, 0, 0, 0, time.UTC),
		}},
	}
	record.FinalSalary = record.ComputeFinalSalary()

	saved, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "Nimal Perera", *saved.EmployeeName)

	saved.AdvanceAmount = decimal.NewFromInt(5000)
	saved.Remark = "advance paid"
	saved.InOut[0].Remark = "late bus"
	require.NoError(t, repo.UpdateEditable(ctx, saved))

	record.ID = saved.ID
	again, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.True(t, again.AdvanceAmount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "advance paid", again.Remark)

	byPeriod, err := repo.ListByPeriod(ctx, companyID, period)
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)

	list, total, err := repo.List(ctx, companyID, salary.SalaryFilter{Period: "2024-05", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)
}

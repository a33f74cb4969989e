package salary

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// testEmployee works 08:00-17:00, half days on Saturday, off on Sunday.
func testEmployee() employee.Employee {
	return employee.Employee{
		ID:        "0190d2a4-5b1e-7c3a-9f00-1a2b3c4d5e6f",
		CompanyID: "0190d2a4-0000-7000-8000-000000000001",
		FullName:  "Nimal Perera",
		Basic:     dec(48000),
		DivideBy:  employee.DivideBy240,
		OTMethod:  employee.OTMethodCalc,
		Shifts: []employee.Shift{
			{Start: employee.MustClockTime("08:00"), End: employee.MustClockTime("17:00")},
		},
		WorkingDays: employee.WorkingDays{
			time.Saturday: employee.DayTypeHalf,
			time.Sunday:   employee.DayTypeOff,
		},
		PaymentStructure: employee.PaymentStructure{
			Additions: []employee.PaymentLine{
				{Name: "Transport", Amount: employee.ParsePaymentAmount("2000-5000")},
				{Name: "Meal", Amount: employee.ParsePaymentAmount("1,549")},
			},
			Deductions: []employee.PaymentLine{
				{Name: "Welfare", Amount: employee.ParsePaymentAmount("500")},
			},
		},
	}
}

func testEngine() *Engine {
	return NewEngine(DefaultEngineConfig(), nil, testLogger)
}

// stubProvider serves a fixed calendar or error.
type stubProvider struct {
	cal   holiday.Calendar
	err   error
	calls int
}

func (p *stubProvider) GetHolidays(ctx context.Context, start, end time.Time) (holiday.Calendar, error) {
	p.calls++
	return p.cal, p.err
}

// scriptedRand replays fixed draws and repeats the last one when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	if v >= n {
		return n - 1
	}
	return v
}

type panickyRand struct{}

func (panickyRand) Float64() float64 { panic("random source exhausted") }
func (panickyRand) IntN(int) int     { panic("random source exhausted") }

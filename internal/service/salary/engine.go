package salary

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ProcessInput carries the request-scoped parameters of one computation.
type ProcessInput struct {
	Employee   employee.Employee
	Period     salary.Period
	Attendance salary.Attendance

	// Calendar is fetched from the holiday provider when nil.
	Calendar *holiday.Calendar
	// GenerateMissing fills days without attendance with synthetic sessions.
	GenerateMissing bool
	// NoPayPerDay is the cost of one absence. When nil the no-pay amount of
	// Existing is kept, or zero without one.
	NoPayPerDay *decimal.Decimal
	// Existing is the salary being regenerated, if any.
	Existing *salary.SalaryRecord
	// Rand overrides the per-employee random stream.
	Rand RandSource
}

// GenerateInput carries the same parameters as a processing pass.
type GenerateInput = ProcessInput

type Engine struct {
	cfg       EngineConfig
	holidays  holiday.Provider
	processor Processor
	composer  Composer
	logger    *slog.Logger
	now       func() time.Time
}

func NewEngine(cfg EngineConfig, holidays holiday.Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	matcher := NewShiftMatcher(cfg.Tolerances, cfg.location(), logger)
	return &Engine{
		cfg:       cfg,
		holidays:  holidays,
		processor: NewProcessor(cfg, matcher),
		composer:  NewComposer(cfg),
		logger:    logger,
		now:       time.Now,
	}
}

func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Calendar fetches the holidays covering period.
func (e *Engine) Calendar(ctx context.Context, period salary.Period) (holiday.Calendar, error) {
	loc := e.cfg.location()
	return e.holidays.GetHolidays(ctx, period.Start(loc), period.End(loc))
}

// ProcessAttendance runs the processing pass without composing a salary.
func (e *Engine) ProcessAttendance(ctx context.Context, in ProcessInput) (salary.ProcessResult, error) {
	pass, err := e.prepare(ctx, in)
	if err != nil {
		return salary.ProcessResult{}, err
	}
	return e.processor.Process(pass), nil
}

// GenerateSalaryForEmployee never panics. Errors and recovered panics become
// the Message of a failed Outcome.
func (e *Engine) GenerateSalaryForEmployee(ctx context.Context, in GenerateInput) (out salary.Outcome) {
	out.EmployeeID = in.Employee.ID
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", salary.ErrComputationFault, r)
			e.logger.Error("salary computation panicked",
				slog.String("employee_id", in.Employee.ID),
				slog.String("period", in.Period.String()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			out = salary.Outcome{EmployeeID: in.Employee.ID, Message: err.Error()}
		}
	}()

	pass, err := e.prepare(ctx, in)
	if err != nil {
		e.logger.Error("salary generation failed",
			slog.String("employee_id", in.Employee.ID),
			slog.String("period", in.Period.String()),
			slog.String("error", err.Error()),
		)
		out.Message = err.Error()
		return out
	}

	result := e.processor.Process(pass)
	record := e.composer.Compose(ComposeInput{
		Employee: in.Employee,
		Period:   in.Period,
		Result:   result,
		Existing: in.Existing,
		Rand:     pass.Rand,
		Now:      e.now(),
	})
	out.Salary = &record
	return out
}

// GenerateBatch computes salaries for many employees of one period. The
// holiday calendar is fetched once and shared; a calendar error aborts the
// whole batch. Outcomes are returned in input order.
func (e *Engine) GenerateBatch(ctx context.Context, period salary.Period, inputs []GenerateInput) ([]salary.Outcome, error) {
	cal, err := e.Calendar(ctx, period)
	if err != nil {
		return nil, err
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	outcomes := make([]salary.Outcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		in.Period = period
		in.Calendar = &cal

		if err := gctx.Err(); err != nil {
			outcomes[i] = salary.Outcome{EmployeeID: in.Employee.ID, Message: err.Error()}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = salary.Outcome{EmployeeID: in.Employee.ID, Message: err.Error()}
				return nil
			}
			outcomes[i] = e.GenerateSalaryForEmployee(gctx, in)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, nil
}

func (e *Engine) prepare(ctx context.Context, in ProcessInput) (passInput, error) {
	if err := in.Employee.Validate(); err != nil {
		return passInput{}, err
	}
	if in.Period.IsZero() {
		return passInput{}, salary.ErrInvalidPeriod
	}

	var cal holiday.Calendar
	if in.Calendar != nil {
		cal = *in.Calendar
	} else {
		fetched, err := e.Calendar(ctx, in.Period)
		if err != nil {
			return passInput{}, err
		}
		cal = fetched
	}

	rnd := in.Rand
	if rnd == nil {
		rnd = NewRand(e.cfg.Seed, in.Employee.ID)
	}

	return passInput{
		Employee:    in.Employee,
		Period:      in.Period,
		Attendance:  in.Attendance,
		Calendar:    cal,
		Generate:    in.GenerateMissing || in.Employee.EffectiveOTMethod() == employee.OTMethodRandom,
		NoPayPerDay: in.NoPayPerDay,
		Existing:    in.Existing,
		Rand:        rnd,
	}, nil
}

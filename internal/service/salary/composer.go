package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var (
	hundred          = decimal.NewFromInt(100)
	derivedShareMin  = decimal.NewFromFloat(0.05)
	derivedShareSpan = decimal.NewFromFloat(0.10)
)

// ComposeInput is everything the composer needs to build one salary record.
type ComposeInput struct {
	Employee employee.Employee
	Period   salary.Period
	Result   salary.ProcessResult
	Existing *salary.SalaryRecord
	Rand     RandSource
	Now      time.Time
}

// Composer turns a processing result into a salary record. It performs no I/O.
type Composer struct {
	cfg EngineConfig
}

func NewComposer(cfg EngineConfig) Composer {
	return Composer{cfg: cfg}
}

func (c Composer) Compose(in ComposeInput) salary.SalaryRecord {
	emp := in.Employee
	noPay := in.Result.NoPay

	var previous salary.PaymentStructure
	if in.Existing != nil {
		previous = in.Existing.PaymentStructure
	}

	structure := salary.PaymentStructure{
		Additions:  c.resolveLines(emp.PaymentStructure.Additions, previous.Additions, emp.Basic, in.Rand),
		Deductions: c.resolveLines(emp.PaymentStructure.Deductions, previous.Deductions, emp.Basic, in.Rand),
	}
	structure.Deductions = append(structure.Deductions, salary.PaymentLine{
		Name:   salary.EPFLineName,
		Amount: c.EmployeeEPF(emp.Basic, noPay),
	})

	record := salary.SalaryRecord{
		CompanyID:  emp.CompanyID,
		EmployeeID: emp.ID,
		Period:     in.Period,
		Basic:      emp.Basic,
		NoPay: salary.Adjustment{
			Amount: noPay,
			Reason: in.Result.NoPayReason,
		},
		OT: salary.Adjustment{
			Amount: in.Result.OT,
			Reason: in.Result.OTReason,
		},
		PaymentStructure: structure,
		InOut:            in.Result.InOutProcessed,
		AdvanceAmount:    decimal.Zero,
		CreatedAt:        in.Now,
		UpdatedAt:        in.Now,
	}
	if in.Existing != nil {
		record.ID = in.Existing.ID
		record.AdvanceAmount = in.Existing.AdvanceAmount
		record.Remark = in.Existing.Remark
		if !in.Existing.CreatedAt.IsZero() {
			record.CreatedAt = in.Existing.CreatedAt
		}
	}
	record.FinalSalary = record.ComputeFinalSalary()
	return record
}

// EmployeeEPF is the 8% contribution on basic less no-pay, never negative.
func (c Composer) EmployeeEPF(basic, noPay decimal.Decimal) decimal.Decimal {
	base := basic.Sub(noPay)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base.Mul(c.cfg.EPFEmployeeRate).Round(2)
}

// resolveLines resolves configured lines in order. A range or derived line
// already resolved in previous under the same name keeps its amount while that
// amount still fits the configuration. Fixed lines always follow the
// configuration.
func (c Composer) resolveLines(lines []employee.PaymentLine, previous []salary.PaymentLine, basic decimal.Decimal, rnd RandSource) []salary.PaymentLine {
	kept := make(map[string]decimal.Decimal, len(previous))
	for _, p := range previous {
		if p.Name == salary.EPFLineName {
			continue
		}
		if _, dup := kept[p.Name]; !dup {
			kept[p.Name] = p.Amount
		}
	}

	resolved := make([]salary.PaymentLine, 0, len(lines)+1)
	for _, l := range lines {
		if l.Name == salary.EPFLineName {
			continue
		}
		amount, ok := kept[l.Name]
		if !ok || !keepsAmount(l.Amount, amount) {
			amount = ResolveAmount(l.Amount, basic, rnd)
		}
		resolved = append(resolved, salary.PaymentLine{Name: l.Name, Amount: amount})
	}
	return resolved
}

// keepsAmount reports whether a previously resolved amount is still a valid
// draw for the configured amount a.
func keepsAmount(a employee.PaymentAmount, prev decimal.Decimal) bool {
	switch a.Kind {
	case employee.AmountRange:
		if prev.LessThan(a.Min) || prev.GreaterThan(a.Max) {
			return false
		}
		_, _, ok := hundredsIn(a)
		return !ok || prev.Mod(hundred).IsZero()
	case employee.AmountDerived:
		return true
	default:
		return false
	}
}

// hundredsIn returns the smallest and largest multiples of 100, counted in
// hundreds, inside the range a. ok is false when the range holds none.
func hundredsIn(a employee.PaymentAmount) (lo, hi int64, ok bool) {
	lo = a.Min.Div(hundred).Ceil().IntPart()
	hi = a.Max.Div(hundred).Floor().IntPart()
	return lo, hi, lo <= hi
}

// ResolveAmount resolves one configured amount:
// a range draws a multiple of 100 inside it, a derived amount is 5% to 15% of
// basic, and a fixed amount is used as is. All are rounded to the nearest 100.
// A range holding no multiple of 100 yields its rounded minimum clamped into
// the range.
func ResolveAmount(a employee.PaymentAmount, basic decimal.Decimal, rnd RandSource) decimal.Decimal {
	switch a.Kind {
	case employee.AmountRange:
		lo, hi, ok := hundredsIn(a)
		if !ok {
			return decimal.Min(decimal.Max(roundToHundred(a.Min), a.Min), a.Max)
		}
		steps := rnd.IntN(int(hi-lo) + 1)
		return decimal.NewFromInt(lo + int64(steps)).Mul(hundred)
	case employee.AmountFixed:
		return roundToHundred(a.Value)
	default:
		share := derivedShareMin.Add(derivedShareSpan.Mul(decimal.NewFromFloat(rnd.Float64())))
		return roundToHundred(basic.Mul(share))
	}
}

func roundToHundred(d decimal.Decimal) decimal.Decimal {
	return d.Div(hundred).Round(0).Mul(hundred)
}

package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// EPFLineName names the employee EPF deduction the composer always appends.
const EPFLineName = "EPF 8%"

// InOutRecord is one processed work session. Raw punches are always
// normalized into this shape before anything is aggregated.
type InOutRecord struct {
	In           time.Time        `json:"in"`
	Out          time.Time        `json:"out"`
	WorkingHours float64          `json:"working_hours"`
	OTHours      float64          `json:"ot_hours"`
	OT           decimal.Decimal  `json:"ot"`
	NoPay        bool             `json:"no_pay"`
	DayType      employee.DayType `json:"day_type"`
	Holiday      string           `json:"holiday"`
	Description  string           `json:"description"`
	Remark       string           `json:"remark"`
}

// Adjustment is an amount with the human-readable reason behind it.
type Adjustment struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// PaymentLine is a resolved addition or deduction.
type PaymentLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PaymentStructure struct {
	Additions  []PaymentLine `json:"additions"`
	Deductions []PaymentLine `json:"deductions"`
}

func (s PaymentStructure) TotalAdditions() decimal.Decimal {
	return sumLines(s.Additions)
}

func (s PaymentStructure) TotalDeductions() decimal.Decimal {
	return sumLines(s.Deductions)
}

// Line returns the first line with the given name among additions and
// deductions.
func (s PaymentStructure) Line(name string) (PaymentLine, bool) {
	for _, l := range s.Additions {
		if l.Name == name {
			return l, true
		}
	}
	for _, l := range s.Deductions {
		if l.Name == name {
			return l, true
		}
	}
	return PaymentLine{}, false
}

func sumLines(lines []PaymentLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// SalaryRecord is created once per employee per period. Later edits only
// touch AdvanceAmount, Remark and per-record remarks; everything else is
// regenerated by the engine.
type SalaryRecord struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	Period           Period
	Basic            decimal.Decimal
	NoPay            Adjustment
	OT               Adjustment
	PaymentStructure PaymentStructure
	InOut            []InOutRecord
	AdvanceAmount    decimal.Decimal
	FinalSalary      decimal.Decimal
	Remark           string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
	EPFNumber    *string
}

// ComputeFinalSalary applies basic + additions + ot - deductions - no-pay.
func (r SalaryRecord) ComputeFinalSalary() decimal.Decimal {
	return r.Basic.
		Add(r.PaymentStructure.TotalAdditions()).
		Add(r.OT.Amount).
		Sub(r.PaymentStructure.TotalDeductions()).
		Sub(r.NoPay.Amount)
}

// IsBalanced reports whether FinalSalary matches its components.
func (r SalaryRecord) IsBalanced() bool {
	return r.ComputeFinalSalary().Equal(r.FinalSalary)
}

// EmployeeEPF returns the synthesized EPF deduction of the record.
func (r SalaryRecord) EmployeeEPF() decimal.Decimal {
	for _, l := range r.PaymentStructure.Deductions {
		if l.Name == EPFLineName {
			return l.Amount
		}
	}
	return decimal.Zero
}

// Attendance is either raw punches or already processed records. When both
// are set the processed records win.
type Attendance struct {
	Punches []time.Time
	Records []InOutRecord
}

func (a Attendance) IsProcessed() bool {
	return len(a.Records) > 0
}

// ProcessResult is the outcome of one salary processing pass.
type ProcessResult struct {
	InOutProcessed []InOutRecord
	OT             decimal.Decimal
	OTHours        float64
	OTReason       string
	NoPay          decimal.Decimal
	NoPayReason    string
	AbsentDays     int
}

// Outcome is what the engine boundary hands back for one employee: a salary
// record, or a message explaining why none could be produced.
type Outcome struct {
	EmployeeID string
	Salary     *SalaryRecord
	Message    string
}

func (o Outcome) Failed() bool {
	return o.Salary == nil
}

// Err converts a failed outcome into a GenerationError.
func (o Outcome) Err() error {
	if !o.Failed() {
		return nil
	}
	return &GenerationError{EmployeeID: o.EmployeeID, Message: o.Message}
}

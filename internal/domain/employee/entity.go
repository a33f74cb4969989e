package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the payroll profile the salary engine reads. It is treated as
// immutable for the duration of one computation.
type Employee struct {
	ID               string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	EPFNumber        *string
	Basic            decimal.Decimal
	DivideBy         int
	OTMethod         OTMethod
	Shifts           []Shift
	WorkingDays      WorkingDays
	PaymentStructure PaymentStructure
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OTMethod selects how overtime is produced for an employee.
type OTMethod string

const (
	OTMethodNone   OTMethod = "noOt"
	OTMethodCalc   OTMethod = "calc"
	OTMethodRandom OTMethod = "random"
)

var OTMethodValues = []string{
	string(OTMethodNone),
	string(OTMethodCalc),
	string(OTMethodRandom),
}

// DivideBy values accepted as daily-rate divisors.
const (
	DivideBy200 = 200
	DivideBy240 = 240
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// PaymentStructure lists the configured additions and deductions. Amounts are
// unresolved until the composer draws or rounds them.
type PaymentStructure struct {
	Additions  []PaymentLine `json:"additions"`
	Deductions []PaymentLine `json:"deductions"`
}

type PaymentLine struct {
	Name   string        `json:"name"`
	Amount PaymentAmount `json:"amount"`
}

// Validate checks the parts of the profile the engine cannot work without.
func (e Employee) Validate() error {
	if len(e.Shifts) == 0 {
		return ErrNoShifts
	}
	if e.DivideBy <= 0 {
		return ErrInvalidDivideBy
	}
	if e.Basic.IsNegative() {
		return ErrInvalidBasic
	}
	switch e.OTMethod {
	case OTMethodNone, OTMethodCalc, OTMethodRandom, "":
	default:
		return ErrInvalidOTMethod
	}
	return nil
}

// EffectiveOTMethod returns calc when no method was configured.
func (e Employee) EffectiveOTMethod() OTMethod {
	if e.OTMethod == "" {
		return OTMethodCalc
	}
	return e.OTMethod
}

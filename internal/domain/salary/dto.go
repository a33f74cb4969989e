package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GeneratePeriodRequest struct {
	Period      string           `json:"period"`
	EmployeeIDs []string         `json:"employee_ids,omitempty"` // Empty = all active employees
	Generate    bool             `json:"generate"`
	NoPayPerDay *decimal.Decimal `json:"no_pay_per_day,omitempty"`
}

func (r *GeneratePeriodRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors

	period, err := ParsePeriod(r.Period)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain valid UUIDs"})
			break
		}
	}
	if r.NoPayPerDay != nil && r.NoPayPerDay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "no_pay_per_day", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return period, nil
}

type GenerateEmployeeRequest struct {
	EmployeeID  string           `json:"-"`
	Period      string           `json:"period"`
	Generate    bool             `json:"generate"`
	NoPayPerDay *decimal.Decimal `json:"no_pay_per_day,omitempty"`
}

func (r *GenerateEmployeeRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	period, err := ParsePeriod(r.Period)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}
	if r.NoPayPerDay != nil && r.NoPayPerDay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "no_pay_per_day", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return period, nil
}

type OutcomeResponse struct {
	EmployeeID string          `json:"employee_id"`
	Success    bool            `json:"success"`
	Salary     *SalaryResponse `json:"salary,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type GenerateBatchResponse struct {
	Period    string            `json:"period"`
	Generated int               `json:"generated"`
	Failed    int               `json:"failed"`
	Outcomes  []OutcomeResponse `json:"outcomes"`
}

type PreviewResponse struct {
	EmployeeID string        `json:"employee_id"`
	Period     string        `json:"period"`
	InOut      []InOutRecord `json:"in_out"`
	OTHours    float64       `json:"ot_hours"`
	OT         Adjustment    `json:"ot"`
	NoPay      Adjustment    `json:"no_pay"`
	AbsentDays int           `json:"absent_days"`
}

// ========== RECORD DTOs ==========

type RecordRemark struct {
	Index  int    `json:"index"`
	Remark string `json:"remark"`
}

// UpdateSalaryRequest only carries the fields a user may edit. Computed
// fields are regenerated, never patched.
type UpdateSalaryRequest struct {
	ID            string           `json:"-"`
	AdvanceAmount *decimal.Decimal `json:"advance_amount,omitempty"`
	Remark        *string          `json:"remark,omitempty"`
	RecordRemarks []RecordRemark   `json:"record_remarks,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.AdvanceAmount != nil && r.AdvanceAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_amount", Message: "must be non-negative"})
	}
	for _, rr := range r.RecordRemarks {
		if rr.Index < 0 {
			errs = append(errs, validator.ValidationError{Field: "record_remarks", Message: "index must be non-negative"})
			break
		}
	}
	if r.AdvanceAmount == nil && r.Remark == nil && len(r.RecordRemarks) == 0 {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employee_id"`
	EmployeeName     *string          `json:"employee_name,omitempty"`
	EmployeeCode     *string          `json:"employee_code,omitempty"`
	Period           string           `json:"period"`
	Basic            decimal.Decimal  `json:"basic"`
	NoPay            Adjustment       `json:"no_pay"`
	OT               Adjustment       `json:"ot"`
	PaymentStructure PaymentStructure `json:"payment_structure"`
	TotalAdditions   decimal.Decimal  `json:"total_additions"`
	TotalDeductions  decimal.Decimal  `json:"total_deductions"`
	InOut            []InOutRecord    `json:"in_out"`
	AdvanceAmount    decimal.Decimal  `json:"advance_amount"`
	FinalSalary      decimal.Decimal  `json:"final_salary"`
	Remark           string           `json:"remark"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func ToResponse(r SalaryRecord) SalaryResponse {
	return SalaryResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCode:     r.EmployeeCode,
		Period:           r.Period.String(),
		Basic:            r.Basic,
		NoPay:            r.NoPay,
		OT:               r.OT,
		PaymentStructure: r.PaymentStructure,
		TotalAdditions:   r.PaymentStructure.TotalAdditions(),
		TotalDeductions:  r.PaymentStructure.TotalDeductions(),
		InOut:            r.InOut,
		AdvanceAmount:    r.AdvanceAmount,
		FinalSalary:      r.FinalSalary,
		Remark:           r.Remark,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type SalaryFilter struct {
	Period     string  `json:"period"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Period != "" {
		if _, ok := validator.IsValidPeriod(f.Period); !ok {
			errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
		}
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSalaryResponse struct {
	Data       []SalaryResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ========== REMITTANCE DTOs ==========

type RemittanceRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	EPFNumber    *string         `json:"epf_number,omitempty"`
	Basic        decimal.Decimal `json:"basic"`
	EmployeeEPF  decimal.Decimal `json:"employee_epf"`
	EmployerEPF  decimal.Decimal `json:"employer_epf"`
	TotalEPF     decimal.Decimal `json:"total_epf"`
	ETF          decimal.Decimal `json:"etf"`
}

type RemittanceResponse struct {
	Period           string          `json:"period"`
	Rows             []RemittanceRow `json:"rows"`
	TotalEmployeeEPF decimal.Decimal `json:"total_employee_epf"`
	TotalEmployerEPF decimal.Decimal `json:"total_employer_epf"`
	TotalEPF         decimal.Decimal `json:"total_epf"`
	TotalETF         decimal.Decimal `json:"total_etf"`
}

package salary

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// RemittanceFor computes the statutory contributions due for one record.
// Employer EPF and ETF are charged on basic; the employee share is the EPF
// line already deducted from the salary.
func RemittanceFor(r salary.SalaryRecord, cfg EngineConfig) salary.RemittanceRow {
	employeeEPF := r.EmployeeEPF()
	employerEPF := r.Basic.Mul(cfg.EPFEmployerRate).Round(2)
	return salary.RemittanceRow{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		EPFNumber:    r.EPFNumber,
		Basic:        r.Basic,
		EmployeeEPF:  employeeEPF,
		EmployerEPF:  employerEPF,
		TotalEPF:     employeeEPF.Add(employerEPF),
		ETF:          r.Basic.Mul(cfg.ETFRate).Round(2),
	}
}

// Remittance summarizes the contributions of every record of a period.
func Remittance(period salary.Period, records []salary.SalaryRecord, cfg EngineConfig) salary.RemittanceResponse {
	resp := salary.RemittanceResponse{
		Period:           period.String(),
		Rows:             make([]salary.RemittanceRow, 0, len(records)),
		TotalEmployeeEPF: decimal.Zero,
		TotalEmployerEPF: decimal.Zero,
		TotalEPF:         decimal.Zero,
		TotalETF:         decimal.Zero,
	}
	for _, r := range records {
		row := RemittanceFor(r, cfg)
		resp.Rows = append(resp.Rows, row)
		resp.TotalEmployeeEPF = resp.TotalEmployeeEPF.Add(row.EmployeeEPF)
		resp.TotalEmployerEPF = resp.TotalEmployerEPF.Add(row.EmployerEPF)
		resp.TotalEPF = resp.TotalEPF.Add(row.TotalEPF)
		resp.TotalETF = resp.TotalETF.Add(row.ETF)
	}
	return resp
}

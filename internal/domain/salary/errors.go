package salary

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod         = errors.New("invalid payroll period, use YYYY-MM")
	ErrSalaryNotFound        = errors.New("salary record not found")
	ErrComputationFault      = errors.New("salary computation failed unexpectedly")
	ErrGenerationFailed      = errors.New("salary generation failed")
	ErrRecordIndexOutOfRange = errors.New("attendance record index out of range")
)

// GenerationError carries the message produced for one employee when the
// engine could not build a salary record.
type GenerationError struct {
	EmployeeID string
	Message    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("salary generation failed for employee %s: %s", e.EmployeeID, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

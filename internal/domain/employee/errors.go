package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrNoShifts           = errors.New("employee has no shifts configured")
	ErrInvalidDivideBy    = errors.New("divide-by must be a positive daily-rate divisor")
	ErrInvalidBasic       = errors.New("basic salary must be non-negative")
	ErrInvalidOTMethod    = errors.New("ot method must be noOt, calc or random")
	ErrInvalidClockTime   = errors.New("invalid clock time, use HH:MM")
	ErrInvalidWorkingDays = errors.New("invalid working days")
)

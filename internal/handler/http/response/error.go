package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var missingYear *holiday.MissingYearError
	var generation *salary.GenerationError

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, jwt.ErrCompanyRequired):
		Forbidden(w, "Company is required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoShifts),
		errors.Is(err, employee.ErrInvalidDivideBy),
		errors.Is(err, employee.ErrInvalidBasic),
		errors.Is(err, employee.ErrInvalidOTMethod),
		errors.Is(err, employee.ErrInvalidClockTime),
		errors.Is(err, employee.ErrInvalidWorkingDays):
		UnprocessableEntity(w, "EMPLOYEE_CONFIGURATION", err.Error())

	// Holiday domain errors
	case errors.As(err, &missingYear):
		UnprocessableEntity(w, "HOLIDAY_DATA_MISSING", missingYear.Error())
	case errors.Is(err, holiday.ErrNoHolidayData):
		UnprocessableEntity(w, "HOLIDAY_DATA_MISSING", err.Error())
	case errors.Is(err, holiday.ErrInvalidDateRange),
		errors.Is(err, holiday.ErrInvalidYear):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, holiday.ErrFeedNotConfigured):
		ServiceUnavailable(w, "Holiday calendar feed is not configured")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, salary.ErrRecordIndexOutOfRange):
		BadRequest(w, err.Error(), nil)
	case errors.As(err, &generation):
		UnprocessableEntity(w, "GENERATION_FAILED", generation.Message)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoPunches),
		errors.Is(err, attendance.ErrInvalidPunch):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// PunchInput is either a full ISO-8601 timestamp or a date plus a time of
// day. The date may use the legacy DD-MM-YYYY format.
type PunchInput struct {
	Timestamp string `json:"timestamp,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

// Parse resolves the punch in loc.
func (p PunchInput) Parse(loc *time.Location) (time.Time, error) {
	if p.Timestamp != "" {
		t, ok := validator.IsValidDateTime(p.Timestamp)
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPunch, p.Timestamp)
		}
		return t, nil
	}

	day, ok := validator.ParseLegacyDate(p.Date, loc)
	if !ok {
		iso, isoOK := validator.IsValidDate(p.Date)
		if !isoOK {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidPunch, p.Date)
		}
		day = time.Date(iso.Year(), iso.Month(), iso.Day(), 0, 0, 0, 0, loc)
	}
	if !validator.IsValidClockTime(p.Time) {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidPunch, p.Time)
	}
	clock, _ := time.Parse("15:04", p.Time)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

type ImportPunchesRequest struct {
	EmployeeID string       `json:"-"`
	Source     string       `json:"source,omitempty"`
	Punches    []PunchInput `json:"punches"`
}

// Validate checks the request and returns the parsed punch times.
func (r *ImportPunchesRequest) Validate(loc *time.Location) ([]time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Source == "" {
		r.Source = string(SourceImport)
	} else if !validator.IsInSlice(r.Source, SourceValues) {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "must be 'import' or 'device'"})
	}
	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{Field: "punches", Message: ErrNoPunches.Error()})
	}

	times := make([]time.Time, 0, len(r.Punches))
	for i, p := range r.Punches {
		t, err := p.Parse(loc)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("punches[%d]", i),
				Message: err.Error(),
			})
			continue
		}
		times = append(times, t)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return times, nil
}

type ImportPunchesResponse struct {
	EmployeeID string `json:"employee_id"`
	Received   int    `json:"received"`
	Imported   int    `json:"imported"`
}

type ListPunchesRequest struct {
	EmployeeID string `json:"-"`
	Period     string `json:"period"`
}

// Validate returns the first day of the requested period.
func (r *ListPunchesRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	month, ok := validator.IsValidPeriod(r.Period)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return month, nil
}

type PunchResponse struct {
	ID        string    `json:"id"`
	PunchedAt time.Time `json:"punched_at"`
	Source    string    `json:"source"`
}

type ListPunchesResponse struct {
	EmployeeID string          `json:"employee_id"`
	Period     string          `json:"period"`
	Punches    []PunchResponse `json:"punches"`
}

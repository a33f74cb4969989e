package holiday

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type ListHolidaysRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks both dates and returns them parsed.
func (r *ListHolidaysRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type HolidayResponse struct {
	Date       string     `json:"date"`
	Categories Categories `json:"categories"`
	Label      string     `json:"label"`
	Summary    string     `json:"summary"`
}

type ListHolidaysResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
	Message  string            `json:"message,omitempty"`
}

type SyncHolidaysResponse struct {
	Year     int `json:"year"`
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date:       h.Key(),
		Categories: h.Categories,
		Label:      h.Categories.Label(),
		Summary:    h.Summary,
	}
}

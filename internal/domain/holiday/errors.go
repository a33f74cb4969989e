package holiday

import (
	"errors"
	"fmt"
)

var (
	ErrNoHolidayData     = errors.New("no holiday data available for the requested year")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrFeedNotConfigured = errors.New("holiday calendar feed is not configured")
	ErrInvalidYear       = errors.New("invalid year")
)

// MissingYearError names the year the calendar has no entries for.
type MissingYearError struct {
	Year int
}

func (e *MissingYearError) Error() string {
	return fmt.Sprintf("no holidays found for %d, sync the holiday calendar first", e.Year)
}

func (e *MissingYearError) Unwrap() error {
	return ErrNoHolidayData
}

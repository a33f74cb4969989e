package salary

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// Period is a payroll month, written "YYYY-MM".
type Period struct {
	Year  int
	Month time.Month
}

func ParsePeriod(s string) (Period, error) {
	t, ok := validator.IsValidPeriod(s)
	if !ok {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) IsZero() bool {
	return p.Year == 0
}

// Start is local midnight of the first day of the period.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is local midnight of the last day of the period.
func (p Period) End(loc *time.Location) time.Time {
	return p.Start(loc).AddDate(0, 1, -1)
}

// Days lists every calendar day of the period at local midnight.
func (p Period) Days(loc *time.Location) []time.Time {
	start := p.Start(loc)
	next := start.AddDate(0, 1, 0)
	days := make([]time.Time, 0, 31)
	for d := start; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether the local calendar date of t falls in the period.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	local := t.In(loc)
	return local.Year() == p.Year && local.Month() == p.Month
}

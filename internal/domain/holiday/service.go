package holiday

import (
	"context"
	"time"
)

// Provider is the collaborator the salary engine consumes. Start and end are
// inclusive calendar dates. A year inside the range without any holiday data
// is reported as ErrNoHolidayData rather than an empty calendar.
type Provider interface {
	GetHolidays(ctx context.Context, start, end time.Time) (Calendar, error)
}

type HolidayService interface {
	Provider
	ListHolidays(ctx context.Context, req ListHolidaysRequest) (ListHolidaysResponse, error)
	SyncYear(ctx context.Context, year int) (SyncHolidaysResponse, error)
}

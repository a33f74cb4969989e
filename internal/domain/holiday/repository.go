package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	ListByRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	CountByYear(ctx context.Context, year int) (int, error)
	UpsertMany(ctx context.Context, holidays []Holiday) (int, error)
}

// Feed fetches holidays for a year from an external calendar.
type Feed interface {
	FetchYear(ctx context.Context, year int) ([]Holiday, error)
}

package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
)

const (
	minSyncYear = 2000
	maxSyncYear = 2100
)

type HolidayServiceImpl struct {
	repo   holiday.HolidayRepository
	feed   holiday.Feed
	logger *slog.Logger
}

// NewHolidayService builds the holiday provider. feed may be nil when no
// external calendar is configured; SyncYear then fails.
func NewHolidayService(repo holiday.HolidayRepository, feed holiday.Feed, logger *slog.Logger) holiday.HolidayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HolidayServiceImpl{repo: repo, feed: feed, logger: logger}
}

// GetHolidays returns the calendar for [start, end]. Every year the range
// touches must have been synced, otherwise a MissingYearError is returned.
func (s *HolidayServiceImpl) GetHolidays(ctx context.Context, start, end time.Time) (holiday.Calendar, error) {
	if end.Before(start) {
		return holiday.Calendar{}, holiday.ErrInvalidDateRange
	}

	for year := start.Year(); year <= end.Year(); year++ {
		count, err := s.repo.CountByYear(ctx, year)
		if err != nil {
			return holiday.Calendar{}, fmt.Errorf("failed to count holidays for %d: %w", year, err)
		}
		if count == 0 {
			return holiday.Calendar{}, &holiday.MissingYearError{Year: year}
		}
	}

	holidays, err := s.repo.ListByRange(ctx, start, end)
	if err != nil {
		return holiday.Calendar{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	return holiday.NewCalendar(holidays), nil
}

func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, req holiday.ListHolidaysRequest) (holiday.ListHolidaysResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return holiday.ListHolidaysResponse{}, err
	}

	cal, err := s.GetHolidays(ctx, start, end)
	if err != nil {
		return holiday.ListHolidaysResponse{}, err
	}

	all := cal.All()
	resp := holiday.ListHolidaysResponse{Holidays: make([]holiday.HolidayResponse, 0, len(all))}
	for _, h := range all {
		resp.Holidays = append(resp.Holidays, holiday.ToResponse(h))
	}
	if len(resp.Holidays) == 0 {
		resp.Message = "no holidays in the requested range"
	}
	return resp, nil
}

// SyncYear pulls one year from the external feed and upserts it.
func (s *HolidayServiceImpl) SyncYear(ctx context.Context, year int) (holiday.SyncHolidaysResponse, error) {
	if s.feed == nil {
		return holiday.SyncHolidaysResponse{}, holiday.ErrFeedNotConfigured
	}
	if year < minSyncYear || year > maxSyncYear {
		return holiday.SyncHolidaysResponse{}, fmt.Errorf("%w: %d", holiday.ErrInvalidYear, year)
	}

	fetched, err := s.feed.FetchYear(ctx, year)
	if err != nil {
		return holiday.SyncHolidaysResponse{}, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}

	upserted, err := s.repo.UpsertMany(ctx, fetched)
	if err != nil {
		return holiday.SyncHolidaysResponse{}, fmt.Errorf("failed to store holidays for %d: %w", year, err)
	}

	s.logger.Info("holidays synced",
		slog.Int("year", year),
		slog.Int("fetched", len(fetched)),
		slog.Int("upserted", upserted),
	)

	return holiday.SyncHolidaysResponse{
		Year:     year,
		Fetched:  len(fetched),
		Upserted: upserted,
	}, nil
}

package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
)

// HolidayJobs keeps the holiday table filled from the external calendar.
type HolidayJobs struct {
	holidayService holiday.HolidayService
	interval       time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

func NewHolidayJobs(holidayService holiday.HolidayService, interval time.Duration, logger *slog.Logger) *HolidayJobs {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &HolidayJobs{
		holidayService: holidayService,
		interval:       interval,
		now:            time.Now,
		logger:         logger,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "sync_holidays",
		Interval: j.interval,
		Timeout:  2 * time.Minute,
		Fn:       j.SyncHolidays,
	})
}

// SyncHolidays pulls the current and the next year. The next year is often
// not published yet, so its failure is only logged.
func (j *HolidayJobs) SyncHolidays(ctx context.Context) error {
	year := j.now().Year()

	if _, err := j.holidayService.SyncYear(ctx, year); err != nil {
		if errors.Is(err, holiday.ErrFeedNotConfigured) {
			j.logger.Debug("holiday feed not configured, skipping sync")
			return nil
		}
		return fmt.Errorf("sync holidays for %d: %w", year, err)
	}

	if _, err := j.holidayService.SyncYear(ctx, year+1); err != nil {
		j.logger.Warn("holiday sync for next year failed",
			slog.Int("year", year+1),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

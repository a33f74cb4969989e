package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingHolidayService struct {
	holiday.HolidayService
	years []int
	errs  map[int]error
}

func (s *recordingHolidayService) SyncYear(ctx context.Context, year int) (holiday.SyncHolidaysResponse, error) {
	s.years = append(s.years, year)
	if err := s.errs[year]; err != nil {
		return holiday.SyncHolidaysResponse{}, err
	}
	return holiday.SyncHolidaysResponse{Year: year}, nil
}

func TestHolidayJobs_SyncHolidays(t *testing.T) {
	svc := &recordingHolidayService{errs: map[int]error{2027: errors.New("not published")}}
	jobs := NewHolidayJobs(svc, time.Hour, testLogger)
	jobs.now = func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.SyncHolidays(context.Background()))
	assert.Equal(t, []int{2026, 2027}, svc.years)
}

func TestHolidayJobs_CurrentYearFailure(t *testing.T) {
	svc := &recordingHolidayService{errs: map[int]error{2026: errors.New("quota exceeded")}}
	jobs := NewHolidayJobs(svc, time.Hour, testLogger)
	jobs.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	err := jobs.SyncHolidays(context.Background())
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Equal(t, []int{2026}, svc.years)
}

func TestHolidayJobs_FeedNotConfigured(t *testing.T) {
	svc := &recordingHolidayService{errs: map[int]error{2026: holiday.ErrFeedNotConfigured}}
	jobs := NewHolidayJobs(svc, time.Hour, testLogger)
	jobs.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	assert.NoError(t, jobs.SyncHolidays(context.Background()))
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(testLogger)
	svc := &recordingHolidayService{}
	jobs := NewHolidayJobs(svc, time.Hour, testLogger)
	jobs.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	jobs.RegisterJobs(s)

	s.RunOnce(context.Background())
	assert.Equal(t, []int{2026, 2027}, svc.years)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(testLogger)
	ran := make(chan struct{}, 1)
	s.AddJob(Job{
		Name:     "ping",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

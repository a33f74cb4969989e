package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a function run on a fixed interval. A zero Timeout lets a run last
// until the scheduler stops.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs interval jobs in their own goroutines.
type Scheduler struct {
	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	logger  *slog.Logger
	started bool
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddJob registers a job. Jobs added after Start are not run.
func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	s.logger.Info("cron job registered", slog.String("name", job.Name), slog.Duration("interval", job.Interval))
}

// Start runs every job once immediately and then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	s.logger.Info("cron scheduler started", slog.Int("job_count", len(s.jobs)))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping cron scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("cron job stopping", slog.String("name", job.Name))
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Debug("cron job starting", slog.String("name", job.Name))

	if err := job.Fn(ctx); err != nil {
		s.logger.Error("cron job failed",
			slog.String("name", job.Name),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return
	}
	s.logger.Debug("cron job completed", slog.String("name", job.Name), slog.Duration("duration", time.Since(start)))
}

// RunOnce runs all jobs once in the calling goroutine.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.executeJob(ctx, job)
	}
}

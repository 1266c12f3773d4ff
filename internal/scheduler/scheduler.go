package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/orchestrator"
)

// Refresher runs one refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) *orchestrator.Report
}

// Scheduler triggers a refresh cycle every interval.
//
// Cycles may overlap when one runs longer than the interval; each one writes
// its own results and the latest write for a symbol wins.
type Scheduler struct {
	cron     *cron.Cron
	job      Refresher
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates a Scheduler. timeout bounds each cycle; zero means the interval.
func New(job Refresher, interval, timeout time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	if timeout <= 0 {
		timeout = interval
	}
	log := logger.Component("scheduler")
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger{log})),
		job:      job,
		interval: interval,
		timeout:  timeout,
		log:      log,
	}, nil
}

// Start registers the periodic job and starts the cron loop.
func (s *Scheduler) Start() error {
	spec := "@every " + s.interval.String()
	if _, err := s.cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", spec).Dur("timeout", s.timeout).Msg("scheduler started")
	return nil
}

// Stop halts the cron loop and waits up to wait for running cycles to finish.
func (s *Scheduler) Stop(wait time.Duration) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(wait):
		s.log.Warn().Dur("wait", wait).Msg("refresh still running at shutdown")
	}
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes one cycle synchronously (startup warm-up, manual trigger).
func (s *Scheduler) RunNow() *orchestrator.Report {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.job.Refresh(ctx)
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

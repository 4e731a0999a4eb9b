// Package scheduler runs the content refresh job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Menova10/menova-empower-journey/internal/logger"
)

const defaultJobTimeout = 5 * time.Minute

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	parser  cron.Parser
	job     Job
	timeout time.Duration
	log     logger.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
}

func New(job Job, timeout time.Duration, log logger.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	log = log.With(logger.String("component", "scheduler"))
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cronLogger{log}))),
		parser:  parser,
		job:     job,
		timeout: timeout,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start registers the job on expr ("@every 6h", "0 */6 * * *") and starts
// the cron loop.
func (s *Scheduler) Start(expr string) error {
	schedule, err := s.parser.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	s.cron.Schedule(schedule, cron.FuncJob(func() { s.Run(s.ctx) }))
	s.cron.Start()
	s.log.Info("refresh scheduled",
		logger.String("schedule", expr),
		logger.String("next_run", schedule.Next(time.Now()).Format(time.RFC3339)),
	)
	return nil
}

// Run executes the job once unless a previous run is still in progress.
// It reports whether the job ran.
func (s *Scheduler) Run(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("previous refresh still running, skipping")
		return false
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.log.Error("scheduled refresh failed", logger.Error(err), logger.Duration("elapsed", time.Since(start)))
		return true
	}
	s.log.Info("scheduled refresh finished", logger.Duration("elapsed", time.Since(start)))
	return true
}

// Stop halts scheduling and waits for a running job to finish, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out, cancelling running job")
	}
	s.cancel()
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, logger.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, logger.Error(err), logger.Any("details", keysAndValues))
}

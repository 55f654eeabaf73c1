package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"motohub/internal/domain"
)

// Runner is one full pipeline pass.
type Runner interface {
	Run(ctx context.Context) (*domain.RunReport, error)
}

type Scheduler struct {
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

// NewScheduler returns a Scheduler that starts a run every interval. Each
// run gets at most runTimeout; zero means no limit.
func NewScheduler(runner Runner, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:     runner,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

// Start runs immediately and then on every tick until ctx is cancelled. A
// run still in progress when a tick fires delays that tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "run_timeout", s.runTimeout)

	s.runPipeline(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runPipeline(ctx)
		}
	}
}

// RunOnce runs a single pass. It fails when the run was aborted or any
// phase did not fully succeed.
func (s *Scheduler) RunOnce(ctx context.Context) (*domain.RunReport, error) {
	report, err := s.runPipeline(ctx)
	if err != nil {
		return report, err
	}
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%d phases did not complete, first: %s", len(failed), failed[0])
	}
	return report, nil
}

func (s *Scheduler) runPipeline(ctx context.Context) (*domain.RunReport, error) {
	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.runTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
	}
	defer cancel()

	report, err := s.runner.Run(runCtx)
	if err != nil {
		s.logger.Error("pipeline run failed", "error", err)
		return report, err
	}

	s.logger.Info("pipeline run completed",
		"run_id", report.RunID,
		"phases", len(report.Phases),
		"failed", len(report.Failed()),
	)
	return report, nil
}

// Package crawler runs crawl phases: sets of independent units executed by a
// bounded worker pool with retry, backoff and per-unit failure isolation.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"motohub/internal/domain"
	"motohub/internal/metrics"
)

// Unit is one fetch-extract-apply step. Run returns nil on success, an error
// wrapped with Fatal when retrying cannot help, or any other error to be
// retried.
type Unit struct {
	Name string
	Run  func(ctx context.Context) error
}

type Config struct {
	MaxConcurrency int
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// PhaseTimeout bounds a whole phase. Zero means no limit.
	PhaseTimeout time.Duration
}

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeFatal     Outcome = "fatal"
	OutcomeCancelled Outcome = "cancelled"
)

type UnitResult struct {
	Unit     string
	Outcome  Outcome
	Attempts int
	Err      error
}

type PhaseResult struct {
	Phase     string
	Units     []UnitResult
	Cancelled bool
	Duration  time.Duration
}

// Complete reports whether every unit of the phase succeeded and the phase
// ran to the end.
func (r PhaseResult) Complete() bool {
	return !r.Cancelled && r.Succeeded() == len(r.Units)
}

func (r PhaseResult) Succeeded() int {
	n := 0
	for _, u := range r.Units {
		if u.Outcome == OutcomeSucceeded {
			n++
		}
	}
	return n
}

func (r PhaseResult) Failures() []domain.UnitFailure {
	var failures []domain.UnitFailure
	for _, u := range r.Units {
		if u.Outcome != OutcomeSucceeded {
			failures = append(failures, domain.UnitFailure{Unit: u.Unit, Attempts: u.Attempts, Err: u.Err})
		}
	}
	return failures
}

type Coordinator struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Coordinator {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	return &Coordinator{
		cfg:    cfg,
		logger: logger.With("component", "crawler"),
	}
}

// RunPhase executes units with at most MaxConcurrency running at once and
// returns one result per unit, in the order the units were given. A failing
// unit never stops its siblings. When the phase deadline passes or ctx is
// cancelled, in-flight units see a cancelled context and units not yet
// started are reported as cancelled without running.
func (c *Coordinator) RunPhase(ctx context.Context, name string, units []Unit) PhaseResult {
	startTime := time.Now()
	logger := c.logger.With("phase", name)

	phaseCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.cfg.PhaseTimeout > 0 {
		phaseCtx, cancel = context.WithTimeout(ctx, c.cfg.PhaseTimeout)
	}
	defer cancel()

	logger.Info("starting phase", "units", len(units), "max_concurrency", c.cfg.MaxConcurrency)

	results := make([]UnitResult, len(units))
	jobs := make(chan int)

	var g errgroup.Group
	for range min(c.cfg.MaxConcurrency, len(units)) {
		g.Go(func() error {
			for i := range jobs {
				results[i] = c.runUnit(phaseCtx, logger, name, units[i])
			}
			return nil
		})
	}

	dispatched := 0
feed:
	for dispatched < len(units) {
		select {
		case jobs <- dispatched:
			dispatched++
		case <-phaseCtx.Done():
			break feed
		}
	}
	close(jobs)
	_ = g.Wait()

	for i := dispatched; i < len(units); i++ {
		results[i] = UnitResult{Unit: units[i].Name, Outcome: OutcomeCancelled, Err: phaseCtx.Err()}
		metrics.CrawlUnits.WithLabelValues(name, string(OutcomeCancelled)).Inc()
	}

	result := PhaseResult{
		Phase:     name,
		Units:     results,
		Cancelled: phaseCtx.Err() != nil,
		Duration:  time.Since(startTime),
	}

	logger.Info("phase finished",
		"units", len(units),
		"succeeded", result.Succeeded(),
		"failed", len(units)-result.Succeeded(),
		"cancelled", result.Cancelled,
		"duration", result.Duration,
	)

	return result
}

func (c *Coordinator) runUnit(ctx context.Context, logger *slog.Logger, phase string, unit Unit) UnitResult {
	result := c.retry(ctx, logger, phase, unit)
	metrics.CrawlUnits.WithLabelValues(phase, string(result.Outcome)).Inc()

	if result.Outcome != OutcomeSucceeded {
		logger.Warn("unit failed",
			"unit", unit.Name,
			"outcome", result.Outcome,
			"attempts", result.Attempts,
			"error", result.Err,
		)
	}
	return result
}

func (c *Coordinator) retry(ctx context.Context, logger *slog.Logger, phase string, unit Unit) UnitResult {
	result := UnitResult{Unit: unit.Name}

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			logger.Debug("retrying unit",
				"unit", unit.Name,
				"attempt", attempt,
				"max_retries", c.cfg.MaxRetries,
				"delay", delay,
				"error", result.Err,
			)
			metrics.CrawlRetries.WithLabelValues(phase).Inc()

			if err := sleep(ctx, delay); err != nil {
				result.Outcome = OutcomeCancelled
				result.Err = fmt.Errorf("cancelled during backoff: %w (last error: %w)", err, result.Err)
				return result
			}
		}

		if err := ctx.Err(); err != nil {
			result.Outcome = OutcomeCancelled
			result.Err = err
			return result
		}

		result.Attempts++
		err := runOnce(ctx, unit)
		if err == nil {
			result.Outcome = OutcomeSucceeded
			result.Err = nil
			return result
		}
		result.Err = err

		if ctx.Err() != nil {
			result.Outcome = OutcomeCancelled
			return result
		}
		if IsFatal(err) {
			result.Outcome = OutcomeFatal
			return result
		}
	}

	result.Outcome = OutcomeFailed
	return result
}

// runOnce runs the unit once, turning a panic into a fatal error.
func runOnce(ctx context.Context, unit Unit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Fatal(fmt.Errorf("unit panicked: %v", r))
		}
	}()
	return unit.Run(ctx)
}

// backoff returns InitialBackoff * 2^(attempt-1), capped at MaxBackoff, with
// +/-10% jitter.
func (c *Coordinator) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(c.cfg.InitialBackoff) * math.Pow(2, float64(attempt-1)))
	if delay <= 0 || delay > c.cfg.MaxBackoff {
		delay = c.cfg.MaxBackoff
	}
	if window := int64(delay) / 5; window > 0 {
		delay += time.Duration(rand.Int64N(window)) - delay/10
	}
	return max(delay, 0)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

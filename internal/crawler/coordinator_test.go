package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CoordinatorTestSuite struct {
	suite.Suite

	cfg    Config
	logger *slog.Logger
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.cfg = Config{
		MaxConcurrency: 3,
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) coordinator() *Coordinator {
	return New(s.cfg, s.logger)
}

func succeed(name string) Unit {
	return Unit{Name: name, Run: func(context.Context) error { return nil }}
}

func (s *CoordinatorTestSuite) TestRunPhase_AllSucceed() {
	units := []Unit{succeed("a"), succeed("b"), succeed("c"), succeed("d")}

	result := s.coordinator().RunPhase(context.Background(), "models", units)

	s.True(result.Complete())
	s.False(result.Cancelled)
	s.Equal(4, result.Succeeded())
	s.Empty(result.Failures())
	s.Require().Len(result.Units, 4)
	for i, u := range result.Units {
		s.Equal(units[i].Name, u.Unit)
		s.Equal(1, u.Attempts)
	}
}

func (s *CoordinatorTestSuite) TestRunPhase_NoUnits() {
	result := s.coordinator().RunPhase(context.Background(), "empty", nil)

	s.True(result.Complete())
	s.Empty(result.Units)
}

func (s *CoordinatorTestSuite) TestRunPhase_RetriesUntilSuccess() {
	var calls atomic.Int32
	flaky := Unit{Name: "flaky", Run: func(context.Context) error {
		if calls.Add(1) < 3 {
			return errors.New("connection reset")
		}
		return nil
	}}

	result := s.coordinator().RunPhase(context.Background(), "shops", []Unit{flaky})

	s.True(result.Complete())
	s.Equal(OutcomeSucceeded, result.Units[0].Outcome)
	s.Equal(3, result.Units[0].Attempts)
	s.NoError(result.Units[0].Err)
}

func (s *CoordinatorTestSuite) TestRunPhase_ExhaustedUnitDoesNotBlockSiblings() {
	broken := errors.New("blocked by site")
	units := []Unit{
		succeed("a"),
		{Name: "bad", Run: func(context.Context) error { return broken }},
		succeed("b"),
		succeed("c"),
		succeed("d"),
	}

	result := s.coordinator().RunPhase(context.Background(), "listings", units)

	s.False(result.Complete())
	s.Equal(4, result.Succeeded())

	failures := result.Failures()
	s.Require().Len(failures, 1)
	s.Equal("bad", failures[0].Unit)
	s.Equal(s.cfg.MaxRetries+1, failures[0].Attempts)
	s.ErrorIs(failures[0].Err, broken)
	s.Equal(OutcomeFailed, result.Units[1].Outcome)
}

func (s *CoordinatorTestSuite) TestRunPhase_FatalNotRetried() {
	var calls atomic.Int32
	gone := Unit{Name: "gone", Run: func(context.Context) error {
		calls.Add(1)
		return fmt.Errorf("fetch page: %w", Fatal(errors.New("status 404")))
	}}

	result := s.coordinator().RunPhase(context.Background(), "listings", []Unit{gone, succeed("ok")})

	s.Equal(int32(1), calls.Load())
	s.Equal(OutcomeFatal, result.Units[0].Outcome)
	s.Equal(1, result.Units[0].Attempts)
	s.Equal(OutcomeSucceeded, result.Units[1].Outcome)
	s.False(result.Complete())
}

func (s *CoordinatorTestSuite) TestRunPhase_ConcurrencyBound() {
	s.cfg.MaxConcurrency = 2

	var active, peak atomic.Int32
	units := make([]Unit, 10)
	for i := range units {
		units[i] = Unit{Name: fmt.Sprintf("u%d", i), Run: func(context.Context) error {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return nil
		}}
	}

	result := s.coordinator().RunPhase(context.Background(), "models", units)

	s.True(result.Complete())
	s.LessOrEqual(peak.Load(), int32(2))
	s.Equal(int32(2), peak.Load())
}

func (s *CoordinatorTestSuite) TestRunPhase_TimeoutCancelsUnits() {
	s.cfg.MaxConcurrency = 2
	s.cfg.PhaseTimeout = 30 * time.Millisecond

	block := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	units := []Unit{
		{Name: "slow-1", Run: block},
		{Name: "slow-2", Run: block},
		{Name: "never-started", Run: block},
	}

	result := s.coordinator().RunPhase(context.Background(), "listings", units)

	s.True(result.Cancelled)
	s.False(result.Complete())
	for _, u := range result.Units {
		s.Equal(OutcomeCancelled, u.Outcome, u.Unit)
		s.ErrorIs(u.Err, context.DeadlineExceeded, u.Unit)
	}
	s.Equal(0, result.Units[2].Attempts)
}

func (s *CoordinatorTestSuite) TestRunPhase_ParentCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := s.coordinator().RunPhase(ctx, "models", []Unit{succeed("a"), succeed("b")})

	s.True(result.Cancelled)
	s.False(result.Complete())
	for _, u := range result.Units {
		s.Equal(OutcomeCancelled, u.Outcome)
	}
}

func (s *CoordinatorTestSuite) TestRunPhase_PanicIsolated() {
	units := []Unit{
		{Name: "panics", Run: func(context.Context) error { panic("nil selection") }},
		succeed("ok"),
	}

	result := s.coordinator().RunPhase(context.Background(), "shops", units)

	s.Equal(OutcomeFatal, result.Units[0].Outcome)
	s.Equal(1, result.Units[0].Attempts)
	s.ErrorContains(result.Units[0].Err, "nil selection")
	s.Equal(OutcomeSucceeded, result.Units[1].Outcome)
}

func (s *CoordinatorTestSuite) TestRunPhase_UnitsRunOnce() {
	var mu sync.Mutex
	seen := make(map[string]int)
	units := make([]Unit, 20)
	for i := range units {
		name := fmt.Sprintf("u%d", i)
		units[i] = Unit{Name: name, Run: func(context.Context) error {
			mu.Lock()
			seen[name]++
			mu.Unlock()
			return nil
		}}
	}

	s.coordinator().RunPhase(context.Background(), "models", units)

	s.Len(seen, 20)
	for name, n := range seen {
		s.Equal(1, n, name)
	}
}

func TestBackoff(t *testing.T) {
	c := New(Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}, slog.Default())

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for i, base := range expected {
		for range 50 {
			got := c.backoff(i + 1)
			assert.GreaterOrEqual(t, got, base-base/10, "attempt %d", i+1)
			assert.LessOrEqual(t, got, base+base/10, "attempt %d", i+1)
		}
	}
}

func TestFatal(t *testing.T) {
	base := errors.New("status 410")
	wrapped := fmt.Errorf("fetch: %w", Fatal(base))

	require.True(t, IsFatal(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "fetch: status 410", wrapped.Error())
	assert.False(t, IsFatal(base))
	assert.NoError(t, Fatal(nil))
}

// Package pipeline runs the crawl stages in dependency order: model and
// shop master data for every site first, listings last.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motohub/internal/crawler"
	"motohub/internal/domain"
	"motohub/internal/metrics"
	"motohub/internal/source"
)

// RunDeps are the components whose state must not outlive a single run.
// Their caches are rebuilt from storage on every run.
type RunDeps struct {
	Resolver Resolver
	Listings ListingSyncer
}

type Deps struct {
	Sources     []source.Source
	Fetcher     source.Fetcher
	Sites       SiteStore
	Enrichment  EnrichmentStore
	Coordinator *crawler.Coordinator
	NewRun      func() RunDeps
}

type Pipeline struct {
	sources     []source.Source
	fetcher     source.Fetcher
	sites       SiteStore
	enrichment  EnrichmentStore
	coordinator *crawler.Coordinator
	newRun      func() RunDeps
	logger      *slog.Logger
}

func New(deps Deps, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		sources:     deps.Sources,
		fetcher:     deps.Fetcher,
		sites:       deps.Sites,
		enrichment:  deps.Enrichment,
		coordinator: deps.Coordinator,
		newRun:      deps.NewRun,
		logger:      logger.With("component", "pipeline"),
	}
}

// target is one site and the row it maps to in the sites table.
type target struct {
	source source.Source
	site   domain.Site
}

// Run executes one full pass. It returns an error only when a master stage
// failed and the run was aborted; listing failures are reported in the
// RunReport and do not stop the remaining sites.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := p.logger.With("run_id", report.RunID)
	logger.Info("starting pipeline run", "sites", len(p.sources))

	deps := p.newRun()
	targets := make([]target, len(p.sources))

	for i, src := range p.sources {
		phase := p.runModels(ctx, logger, deps.Resolver, src, &targets[i])
		if err := p.record(logger, report, phase); err != nil {
			return p.abort(logger, report, err)
		}
	}

	_ = p.record(logger, report, p.runEnrichment(ctx, logger, targets))

	for _, t := range targets {
		phase := p.runShops(ctx, logger, deps.Resolver, t)
		if err := p.record(logger, report, phase); err != nil {
			return p.abort(logger, report, err)
		}
	}

	for _, t := range targets {
		_ = p.record(logger, report, p.runListings(ctx, logger, deps, t))
	}

	report.FinishedAt = time.Now()
	logger.Info("pipeline run finished",
		"phases", len(report.Phases),
		"failed", len(report.Failed()),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	return report, nil
}

func (p *Pipeline) abort(logger *slog.Logger, report *domain.RunReport, err error) (*domain.RunReport, error) {
	report.Aborted = true
	report.FinishedAt = time.Now()
	logger.Error("pipeline run aborted", "error", err, "duration", report.FinishedAt.Sub(report.StartedAt))
	return report, err
}

// record appends the phase to the report. It returns an error when the
// phase was a failed master stage and the run must stop.
func (p *Pipeline) record(logger *slog.Logger, report *domain.RunReport, phase domain.PhaseReport) error {
	report.Phases = append(report.Phases, phase)
	metrics.PhaseDuration.WithLabelValues(string(phase.Stage), string(phase.Status)).Observe(phase.Duration.Seconds())

	attrs := []any{
		"stage", phase.Stage,
		"site", phase.Site,
		"status", phase.Status,
		"units", phase.Units,
		"succeeded", phase.Succeeded,
		"duration", phase.Duration,
	}
	if phase.ListingSync != nil {
		attrs = append(attrs,
			"observed", phase.ListingSync.Observed,
			"new", phase.ListingSync.New,
			"sold_out", phase.ListingSync.SoldOut,
			"reconciled", phase.ListingSync.Reconciled,
		)
	}

	switch phase.Status {
	case domain.PhaseSucceeded, domain.PhaseSkipped:
		logger.Info("phase completed", attrs...)
	default:
		if phase.Err != nil {
			attrs = append(attrs, "error", phase.Err)
		}
		for _, f := range phase.Failures {
			logger.Warn("unit failed", "stage", phase.Stage, "site", phase.Site, "unit", f.Unit, "attempts", f.Attempts, "error", f.Err)
		}
		logger.Warn("phase did not complete", attrs...)
	}

	if phase.Stage.Master() && phase.Status == domain.PhaseFailed {
		return phaseError(phase)
	}
	return nil
}

func phaseError(phase domain.PhaseReport) error {
	switch {
	case phase.Err != nil:
		return fmt.Errorf("%s: %w", phase, phase.Err)
	case len(phase.Failures) > 0:
		return fmt.Errorf("%s: %w", phase, phase.Failures[0].Err)
	default:
		return fmt.Errorf("%s: failed", phase)
	}
}

type stageRun struct {
	report    domain.PhaseReport
	startTime time.Time
}

func startStage(stage domain.Stage, site string) *stageRun {
	return &stageRun{
		report:    domain.PhaseReport{Stage: stage, Site: site},
		startTime: time.Now(),
	}
}

// finish folds the coordinator results into the report. A stage fails when
// setup failed, a phase was cut short, or no unit succeeded at all; some
// failed units only make it partial.
func (s *stageRun) finish(err error, results ...crawler.PhaseResult) domain.PhaseReport {
	r := &s.report
	r.Err = err
	r.Duration = time.Since(s.startTime)

	cancelled := false
	for _, res := range results {
		r.Units += len(res.Units)
		r.Succeeded += res.Succeeded()
		r.Failures = append(r.Failures, res.Failures()...)
		cancelled = cancelled || res.Cancelled
	}

	switch {
	case err != nil, cancelled:
		r.Status = domain.PhaseFailed
	case r.Units > 0 && r.Succeeded == 0:
		r.Status = domain.PhaseFailed
	case len(r.Failures) > 0:
		r.Status = domain.PhasePartial
	default:
		r.Status = domain.PhaseSucceeded
	}
	return *r
}

// enumerate runs a site-level setup step as a single retried unit.
func (p *Pipeline) enumerate(ctx context.Context, phase string, fn func(ctx context.Context) error) error {
	result := p.coordinator.RunPhase(ctx, phase, []crawler.Unit{{Name: "enumerate", Run: fn}})
	if result.Complete() {
		return nil
	}
	if failures := result.Failures(); len(failures) > 0 && failures[0].Err != nil {
		return fmt.Errorf("%s: %w", phase, failures[0].Err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}
	return fmt.Errorf("%s: %w", phase, context.DeadlineExceeded)
}

func phaseName(site, name string) string {
	return site + "/" + name
}

func (p *Pipeline) lookupSite(ctx context.Context, src source.Source) (domain.Site, error) {
	site, err := p.sites.GetByName(ctx, src.Name())
	if err != nil {
		if errors.Is(err, domain.ErrSiteNotFound) {
			return domain.Site{}, fmt.Errorf("site %q: %w", src.Name(), err)
		}
		return domain.Site{}, fmt.Errorf("get site %q: %w", src.Name(), err)
	}
	return *site, nil
}

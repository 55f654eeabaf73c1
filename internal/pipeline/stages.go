package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/crawler"
	"motohub/internal/domain"
	"motohub/internal/normalize"
	"motohub/internal/resolver"
	"motohub/internal/service"
	"motohub/internal/source"
)

// maxPages bounds one pagination walk.
const maxPages = 500

func (p *Pipeline) runModels(ctx context.Context, logger *slog.Logger, res Resolver, src source.Source, t *target) domain.PhaseReport {
	stage := startStage(domain.StageModels, src.Name())
	t.source = src

	site, err := p.lookupSite(ctx, src)
	if err != nil {
		return stage.finish(err)
	}
	t.site = site

	if err := res.Warm(ctx, site.ID); err != nil {
		return stage.finish(fmt.Errorf("warm caches: %w", err))
	}

	var makers []domain.MakerTarget
	err = p.enumerate(ctx, phaseName(site.Name, "makers"), func(ctx context.Context) error {
		var err error
		makers, err = src.Makers(ctx, p.fetcher)
		return err
	})
	if err != nil {
		return stage.finish(err)
	}

	units := make([]crawler.Unit, 0, len(makers))
	for _, maker := range makers {
		units = append(units, crawler.Unit{
			Name: maker.Name,
			Run: func(ctx context.Context) error {
				return p.resolveMaker(ctx, logger, res, src, site, maker)
			},
		})
	}

	return stage.finish(nil, p.coordinator.RunPhase(ctx, phaseName(site.Name, "models"), units))
}

func (p *Pipeline) resolveMaker(ctx context.Context, logger *slog.Logger, res Resolver, src source.Source, site domain.Site, maker domain.MakerTarget) error {
	doc, err := p.fetcher.Fetch(ctx, maker.URL)
	if err != nil {
		return fmt.Errorf("fetch maker page: %w", err)
	}

	manufacturerID, err := res.ResolveManufacturer(ctx, maker.Name, maker.Country)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyName) {
			return crawler.Fatal(fmt.Errorf("resolve manufacturer: %w", err))
		}
		return fmt.Errorf("resolve manufacturer: %w", err)
	}

	var errs []error
	resolved := 0
	for _, m := range src.Models(doc) {
		if _, err := res.ResolveModel(ctx, site.ID, m.Identifier, m.RawName, manufacturerID); err != nil {
			if errors.Is(err, resolver.ErrEmptyName) {
				logger.Debug("skipping model without name", "site", site.Name, "identifier", m.Identifier)
				continue
			}
			errs = append(errs, fmt.Errorf("resolve model %q: %w", m.Identifier, err))
			continue
		}
		resolved++
	}

	logger.Debug("maker models resolved", "site", site.Name, "maker", maker.Name, "models", resolved)
	return errors.Join(errs...)
}

// runEnrichment fills model categories from every site's category pages and
// missing displacements from model names. It only ever writes columns that
// are still empty or unknown.
func (p *Pipeline) runEnrichment(ctx context.Context, logger *slog.Logger, targets []target) domain.PhaseReport {
	stage := startStage(domain.StageEnrichment, "")
	r := &stage.report

	var results []crawler.PhaseResult
	for _, t := range targets {
		result, err := p.runCategories(ctx, logger, t)
		if err != nil {
			r.Units++
			r.Failures = append(r.Failures, domain.UnitFailure{Unit: phaseName(t.site.Name, "categories"), Attempts: 1, Err: err})
			continue
		}
		results = append(results, result)
	}

	models, err := p.enrichment.ListMissingDisplacement(ctx)
	if err != nil {
		return stage.finish(fmt.Errorf("list models: %w", err), results...)
	}

	filled := 0
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return stage.finish(err, results...)
		}
		r.Units++

		cc, ok := normalize.Displacement(m.Name)
		if !ok {
			r.Succeeded++
			continue
		}
		updated, err := p.enrichment.SetDisplacement(ctx, m.ID, cc)
		if err != nil {
			r.Failures = append(r.Failures, domain.UnitFailure{Unit: m.Name, Attempts: 1, Err: err})
			continue
		}
		r.Succeeded++
		if updated {
			filled++
		}
	}

	logger.Info("displacement enrichment finished", "candidates", len(models), "filled", filled)
	return stage.finish(nil, results...)
}

// runCategories runs one unit per category page of the site. The category
// shown on the page wins over the one the target was listed with.
func (p *Pipeline) runCategories(ctx context.Context, logger *slog.Logger, t target) (crawler.PhaseResult, error) {
	var categories []domain.CategoryTarget
	err := p.enumerate(ctx, phaseName(t.site.Name, "categories"), func(ctx context.Context) error {
		var err error
		categories, err = t.source.Categories(ctx, p.fetcher)
		return err
	})
	if err != nil {
		return crawler.PhaseResult{}, err
	}

	var filled atomic.Int64
	units := make([]crawler.Unit, 0, len(categories))
	for _, c := range categories {
		units = append(units, crawler.Unit{
			Name: cmp.Or(c.Name, c.URL),
			Run: func(ctx context.Context) error {
				doc, err := p.fetcher.Fetch(ctx, c.URL)
				if err != nil {
					return fmt.Errorf("fetch category page: %w", err)
				}

				shown, names := t.source.CategoryModels(doc)
				category := cmp.Or(shown, c.Name)
				if !domain.KnownCategory(category) {
					return crawler.Fatal(fmt.Errorf("category page %s: no category name", c.URL))
				}

				var errs []error
				for _, name := range names {
					key := normalize.Name(name)
					if key == "" {
						continue
					}
					updated, err := p.enrichment.SetCategory(ctx, key, category)
					if err != nil {
						errs = append(errs, fmt.Errorf("set category of %q: %w", name, err))
						continue
					}
					if updated {
						filled.Add(1)
					}
				}
				return errors.Join(errs...)
			},
		})
	}

	result := p.coordinator.RunPhase(ctx, phaseName(t.site.Name, "categories"), units)
	logger.Info("category enrichment finished", "site", t.site.Name, "pages", len(units), "filled", filled.Load())
	return result, nil
}

func (p *Pipeline) runShops(ctx context.Context, logger *slog.Logger, res Resolver, t target) domain.PhaseReport {
	stage := startStage(domain.StageShops, t.site.Name)

	if err := res.Warm(ctx, t.site.ID); err != nil {
		return stage.finish(fmt.Errorf("warm caches: %w", err))
	}

	var regions []domain.RegionTarget
	err := p.enumerate(ctx, phaseName(t.site.Name, "regions"), func(ctx context.Context) error {
		var err error
		regions, err = t.source.Regions(ctx, p.fetcher)
		return err
	})
	if err != nil {
		return stage.finish(err)
	}

	units := make([]crawler.Unit, 0, len(regions))
	for _, region := range regions {
		units = append(units, crawler.Unit{
			Name: region.Name,
			Run: func(ctx context.Context) error {
				var errs []error
				resolved := 0
				err := p.walk(ctx, logger, region.URL, func(doc *goquery.Document) string {
					shops, next := t.source.Shops(doc)
					for _, shop := range shops {
						if _, err := res.ResolveShop(ctx, t.site.ID, shop, region.Name); err != nil {
							if errors.Is(err, resolver.ErrEmptyName) {
								continue
							}
							errs = append(errs, fmt.Errorf("resolve shop %q: %w", shop.Identifier, err))
							continue
						}
						resolved++
					}
					return next
				})
				logger.Debug("region shops resolved", "site", t.site.Name, "region", region.Name, "shops", resolved)
				return errors.Join(append([]error{err}, errs...)...)
			},
		})
	}

	return stage.finish(nil, p.coordinator.RunPhase(ctx, phaseName(t.site.Name, "shops"), units))
}

// runListings crawls every model's listing pages into a ListingRun and
// reconciles only when both crawl phases saw everything.
func (p *Pipeline) runListings(ctx context.Context, logger *slog.Logger, deps RunDeps, t target) domain.PhaseReport {
	stage := startStage(domain.StageListings, t.site.Name)

	if err := deps.Resolver.Warm(ctx, t.site.ID); err != nil {
		return stage.finish(fmt.Errorf("warm caches: %w", err))
	}

	run, err := deps.Listings.Begin(ctx, t.site)
	if err != nil {
		return stage.finish(err)
	}

	var makers []domain.MakerTarget
	err = p.enumerate(ctx, phaseName(t.site.Name, "listing-makers"), func(ctx context.Context) error {
		var err error
		makers, err = t.source.Makers(ctx, p.fetcher)
		return err
	})
	if err != nil {
		return p.finishListings(stage, run, err)
	}

	targets := &targetSet{byURL: make(map[string]domain.ListingTarget)}
	targetUnits := make([]crawler.Unit, 0, len(makers))
	for _, maker := range makers {
		targetUnits = append(targetUnits, crawler.Unit{
			Name: maker.Name,
			Run: func(ctx context.Context) error {
				return p.collectTargets(ctx, deps.Resolver, t, maker, targets)
			},
		})
	}
	targetPhase := p.coordinator.RunPhase(ctx, phaseName(t.site.Name, "listing-targets"), targetUnits)

	listingTargets := targets.sorted()
	pageUnits := make([]crawler.Unit, 0, len(listingTargets))
	for _, lt := range listingTargets {
		pageUnits = append(pageUnits, crawler.Unit{
			Name: cmp.Or(lt.ModelName, lt.URL),
			Run: func(ctx context.Context) error {
				var errs []error
				err := p.walk(ctx, logger, lt.URL, func(doc *goquery.Document) string {
					records, next := t.source.Listings(doc)
					for _, rec := range records {
						if _, err := run.Observe(ctx, lt.BikeModelID, rec); err != nil {
							errs = append(errs, err)
						}
					}
					return next
				})
				return errors.Join(append([]error{err}, errs...)...)
			},
		})
	}
	pagePhase := p.coordinator.RunPhase(ctx, phaseName(t.site.Name, "listings"), pageUnits)

	complete := targetPhase.Complete() && pagePhase.Complete()
	if _, err := run.Reconcile(ctx, complete); err != nil {
		return p.finishListings(stage, run, fmt.Errorf("reconcile: %w", err), targetPhase, pagePhase)
	}

	return p.finishListings(stage, run, nil, targetPhase, pagePhase)
}

func (p *Pipeline) finishListings(stage *stageRun, run *service.ListingRun, err error, results ...crawler.PhaseResult) domain.PhaseReport {
	stats := run.Stats()
	stage.report.ListingSync = &stats
	return stage.finish(err, results...)
}

func (p *Pipeline) collectTargets(ctx context.Context, res Resolver, t target, maker domain.MakerTarget, targets *targetSet) error {
	doc, err := p.fetcher.Fetch(ctx, maker.URL)
	if err != nil {
		return fmt.Errorf("fetch maker page: %w", err)
	}

	for _, m := range t.source.Models(doc) {
		if m.ListingURL == "" {
			continue
		}

		lt := domain.ListingTarget{
			Identifier: m.Identifier,
			ModelName:  m.RawName,
			URL:        m.ListingURL,
		}
		if m.Identifier != "" {
			id, ok, err := res.LookupModel(ctx, t.site.ID, m.Identifier)
			if err != nil {
				return fmt.Errorf("lookup model %q: %w", m.Identifier, err)
			}
			if ok {
				lt.BikeModelID = &id
			}
		}
		targets.add(lt)
	}
	return nil
}

// walk fetches start and follows the next-page links returned by page until
// there are none. Links already visited end the walk. Hitting maxPages is a
// fatal error since the pages past the limit were never seen.
func (p *Pipeline) walk(ctx context.Context, logger *slog.Logger, start string, page func(doc *goquery.Document) string) error {
	visited := make(map[string]struct{})
	for next := start; next != ""; {
		if _, ok := visited[next]; ok {
			logger.Warn("pagination loop", "url", next)
			return nil
		}
		if len(visited) >= maxPages {
			logger.Warn("pagination limit reached", "start", start, "pages", len(visited))
			return crawler.Fatal(fmt.Errorf("pagination limit %d reached at %s", maxPages, start))
		}
		visited[next] = struct{}{}

		doc, err := p.fetcher.Fetch(ctx, next)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", next, err)
		}
		next = page(doc)
	}
	return nil
}

type targetSet struct {
	mu    sync.Mutex
	byURL map[string]domain.ListingTarget
}

// add keeps the first target seen for a URL, preferring one with a
// resolved model.
func (s *targetSet) add(t domain.ListingTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byURL[t.URL]; ok && (existing.BikeModelID != nil || t.BikeModelID == nil) {
		return
	}
	s.byURL[t.URL] = t
}

func (s *targetSet) sorted() []domain.ListingTarget {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]domain.ListingTarget, 0, len(s.byURL))
	for _, t := range s.byURL {
		targets = append(targets, t)
	}
	slices.SortFunc(targets, func(a, b domain.ListingTarget) int {
		return strings.Compare(a.URL, b.URL)
	})
	return targets
}

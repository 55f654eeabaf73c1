package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"motohub/internal/config"
	"motohub/internal/domain"
	"motohub/internal/metrics"
)

type ObserveResult int

const (
	ObserveSkipped ObserveResult = iota
	ObserveNew
	ObserveRefreshed
)

func (r ObserveResult) String() string {
	switch r {
	case ObserveNew:
		return "new"
	case ObserveRefreshed:
		return "refreshed"
	default:
		return "skipped"
	}
}

// ListingSync brings the stored listings of one site in line with what a
// crawl observed.
type ListingSync struct {
	listings  ListingStore
	shops     ShopFinder
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	config    config.SyncConfig
}

// NewListingSync returns a ListingSync. publisher may be nil.
func NewListingSync(
	listings ListingStore,
	shops ShopFinder,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *ListingSync {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 100
	}
	return &ListingSync{
		listings:  listings,
		shops:     shops,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "listing_sync"),
		config:    cfg,
	}
}

// ListingRun is one pass over a site's listings. Observe is safe for
// concurrent use; Reconcile is called once after every Observe returned.
type ListingRun struct {
	sync      *ListingSync
	site      domain.Site
	logger    *slog.Logger
	startTime time.Time
	known     map[string]struct{}

	mu    sync.Mutex
	found map[string]struct{}
	stats domain.SyncStats
}

// Begin loads the site's currently active listing URLs and starts a run.
func (s *ListingSync) Begin(ctx context.Context, site domain.Site) (*ListingRun, error) {
	urls, err := s.listings.ActiveURLs(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("load active listings: %w", err)
	}

	known := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		known[u] = struct{}{}
	}

	logger := s.logger.With("site", site.Name)
	logger.Info("starting listing sync", "known_active", len(known), "refresh_known", s.config.RefreshKnown)

	return &ListingRun{
		sync:      s,
		site:      site,
		logger:    logger,
		startTime: time.Now(),
		known:     known,
		found:     make(map[string]struct{}),
		stats:     domain.SyncStats{SiteID: site.ID, Site: site.Name},
	}, nil
}

// Observe records one listing seen on the site and writes it to storage.
// The URL counts as found even when the write fails, so a storage hiccup
// never turns a live listing into a sold-out one.
func (r *ListingRun) Observe(ctx context.Context, modelID *int64, rec domain.ExtractedListing) (ObserveResult, error) {
	if rec.SourceURL == "" {
		r.logger.Debug("listing without source url", "title", rec.Title)
		r.count(func(st *domain.SyncStats) { st.Skipped++ })
		return ObserveSkipped, nil
	}

	_, isKnown := r.known[rec.SourceURL]
	r.mu.Lock()
	r.found[rec.SourceURL] = struct{}{}
	r.stats.Observed++
	r.mu.Unlock()

	if isKnown && !r.sync.config.RefreshKnown {
		r.count(func(st *domain.SyncStats) { st.Skipped++ })
		metrics.Listings.WithLabelValues(r.site.Name, ObserveSkipped.String()).Inc()
		return ObserveSkipped, nil
	}

	shopID, err := r.findShop(ctx, rec)
	if err != nil {
		r.count(func(st *domain.SyncStats) { st.Errors++ })
		return ObserveSkipped, err
	}

	listing := &domain.Listing{
		BikeModelID: modelID,
		ShopID:      shopID,
		SiteID:      r.site.ID,
		Title:       rec.Title,
		SourceURL:   rec.SourceURL,
		Price:       rec.Price,
		TotalPrice:  rec.TotalPrice,
		ModelYear:   rec.ModelYear,
		Mileage:     rec.Mileage,
		ImageURLs:   rec.ImageURLs,
	}

	inserted, err := r.sync.listings.Upsert(ctx, listing)
	if err != nil {
		r.count(func(st *domain.SyncStats) { st.Errors++ })
		return ObserveSkipped, fmt.Errorf("upsert listing %s: %w", rec.SourceURL, err)
	}

	result, eventType := ObserveRefreshed, domain.ListingUpdated
	if inserted {
		result, eventType = ObserveNew, domain.ListingCreated
	}
	r.count(func(st *domain.SyncStats) {
		if inserted {
			st.New++
		} else {
			st.Refreshed++
		}
	})
	metrics.Listings.WithLabelValues(r.site.Name, result.String()).Inc()

	r.publish(ctx, &domain.ListingEvent{
		Type:        eventType,
		SiteID:      r.site.ID,
		Site:        r.site.Name,
		SourceURL:   listing.SourceURL,
		Title:       listing.Title,
		BikeModelID: listing.BikeModelID,
		ShopID:      listing.ShopID,
		Price:       listing.Price,
		TotalPrice:  listing.TotalPrice,
		ModelYear:   listing.ModelYear,
		Mileage:     listing.Mileage,
		OccurredAt:  time.Now(),
	})

	return result, nil
}

// Vanished returns the known active URLs that were not observed, sorted.
func (r *ListingRun) Vanished() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var vanished []string
	for u := range r.known {
		if _, ok := r.found[u]; !ok {
			vanished = append(vanished, u)
		}
	}
	slices.Sort(vanished)
	return vanished
}

// Reconcile marks every vanished listing of the site as sold out, in
// batches, inside one transaction. When complete is false the crawl did not
// cover the whole site and nothing is marked.
func (r *ListingRun) Reconcile(ctx context.Context, complete bool) (int, error) {
	if !complete {
		r.logger.Warn("crawl incomplete, skipping reconciliation")
		return 0, nil
	}

	vanished := r.Vanished()
	batchSize := r.sync.config.BatchSize

	var marked []string
	err := r.sync.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for batch := range slices.Chunk(vanished, batchSize) {
			urls, err := r.sync.listings.MarkSoldOut(txCtx, r.site.ID, batch)
			if err != nil {
				return fmt.Errorf("mark sold out: %w", err)
			}
			marked = append(marked, urls...)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.count(func(st *domain.SyncStats) {
		st.SoldOut = len(marked)
		st.Reconciled = true
	})
	metrics.Listings.WithLabelValues(r.site.Name, "sold_out").Add(float64(len(marked)))

	now := time.Now()
	for _, u := range marked {
		r.publish(ctx, &domain.ListingEvent{
			Type:       domain.ListingSoldOut,
			SiteID:     r.site.ID,
			Site:       r.site.Name,
			SourceURL:  u,
			OccurredAt: now,
		})
	}

	r.logger.Info("reconciliation completed", "vanished", len(vanished), "sold_out", len(marked))
	return len(marked), nil
}

// Stats returns the counters so far.
func (r *ListingRun) Stats() domain.SyncStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := r.stats
	stats.Duration = time.Since(r.startTime)
	return stats
}

func (r *ListingRun) findShop(ctx context.Context, rec domain.ExtractedListing) (*int64, error) {
	if r.sync.shops == nil || (rec.ShopIdentifier == "" && rec.ShopName == "") {
		return nil, nil
	}

	id, ok, err := r.sync.shops.FindShop(ctx, r.site.ID, rec.ShopIdentifier, rec.ShopName, rec.ShopAddress)
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (r *ListingRun) publish(ctx context.Context, event *domain.ListingEvent) {
	if r.sync.publisher == nil {
		return
	}

	if err := r.sync.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("failed to publish listing event",
			"type", event.Type,
			"source_url", event.SourceURL,
			"error", err,
		)
		r.count(func(st *domain.SyncStats) { st.Errors++ })
		return
	}
	r.count(func(st *domain.SyncStats) { st.Published++ })
}

func (r *ListingRun) count(fn func(*domain.SyncStats)) {
	r.mu.Lock()
	fn(&r.stats)
	r.mu.Unlock()
}

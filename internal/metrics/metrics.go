// Package metrics holds the Prometheus collectors shared by the syncer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "motohub"

var (
	// CrawlUnits counts finished crawl units by phase and outcome
	// (succeeded, failed, fatal, cancelled).
	CrawlUnits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crawl_units_total",
			Help:      "Crawl units finished, by phase and outcome.",
		},
		[]string{"phase", "outcome"},
	)

	CrawlRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crawl_unit_retries_total",
			Help:      "Crawl unit attempts that were retried after an error.",
		},
		[]string{"phase"},
	)

	PhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_phase_duration_seconds",
			Help:      "Duration of pipeline phases.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		},
		[]string{"stage", "status"},
	)

	// Resolutions counts entity resolutions by the path that produced the id
	// (cache, identifier, name, fuzzy, insert, race).
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Entity resolutions, by entity kind and resolution path.",
		},
		[]string{"entity", "path"},
	)

	Listings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_total",
			Help:      "Listing sync results, by site and result.",
		},
		[]string{"site", "result"},
	)

	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Document fetches, by fetcher mode and status.",
		},
		[]string{"mode", "status"},
	)
)

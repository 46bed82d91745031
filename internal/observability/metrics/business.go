// Package metrics defines Prometheus business metrics for feed ingestion.
// HTTP-level metrics live in the handler layer; this package covers the
// reconciliation pipeline and upstream fetches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetches_total",
			Help: "Total number of fetches against the external news provider",
		},
		[]string{"outcome"},
	)

	upstreamFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of external news provider fetches",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	articlesIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_articles_ingested_total",
			Help: "Total number of new external articles persisted by reconciliation",
		},
	)

	articlesDeduplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_articles_deduplicated_total",
			Help: "Total number of external articles matched to existing stored rows",
		},
	)

	articlesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_articles_dropped_total",
			Help: "Total number of raw articles excluded during normalization",
		},
		[]string{"reason"},
	)

	reconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_reconcile_duration_seconds",
			Help:    "Duration of one feed reconciliation pass",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	feedWarmRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_warm_runs_total",
			Help: "Total number of scheduled feed warm runs by status",
		},
		[]string{"status"},
	)

	feedWarmDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_warm_duration_seconds",
			Help:    "Duration of one scheduled feed warm run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// RecordUpstreamFetch records one fetch against the external provider.
// Outcome is "success", "unavailable" or "malformed".
func RecordUpstreamFetch(outcome string, duration time.Duration) {
	upstreamFetchesTotal.WithLabelValues(outcome).Inc()
	upstreamFetchDuration.Observe(duration.Seconds())
}

// RecordArticlesIngested records newly persisted external articles.
func RecordArticlesIngested(count int) {
	articlesIngestedTotal.Add(float64(count))
}

// RecordArticlesDeduplicated records external articles resolved to stored rows.
func RecordArticlesDeduplicated(count int) {
	articlesDeduplicatedTotal.Add(float64(count))
}

// RecordArticleDropped records a raw article excluded during normalization.
func RecordArticleDropped(reason string) {
	articlesDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordReconcileDuration records the duration of one reconciliation pass.
func RecordReconcileDuration(duration time.Duration) {
	reconcileDuration.Observe(duration.Seconds())
}

// RecordFeedWarmRun records one scheduled warm run. Status is "success" or
// "partial_failure".
func RecordFeedWarmRun(status string, duration time.Duration) {
	feedWarmRunsTotal.WithLabelValues(status).Inc()
	feedWarmDuration.Observe(duration.Seconds())
}

// Package metrics exposes Prometheus instrumentation for the scan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors registered on one registry.
type Metrics struct {
	Registry *prometheus.Registry

	ScanDuration       prometheus.Histogram
	ScansTotal         prometheus.Counter
	ScanErrors         prometheus.Counter
	MarketsFetched     *prometheus.CounterVec
	ProviderErrors     *prometheus.CounterVec
	MatchCandidates    *prometheus.CounterVec
	OpportunitiesFound prometheus.Gauge
	EmbedCacheHits     prometheus.Counter
	EmbedCacheMisses   prometheus.Counter
}

// New creates a registry with all pipeline collectors registered, alongside
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prophitline",
			Name:      "scan_duration_seconds",
			Help:      "Wall time of a full cross-platform scan.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "scans_total",
			Help:      "Completed scans.",
		}),
		ScanErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "scan_errors_total",
			Help:      "Scans that aborted with an error.",
		}),
		MarketsFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "markets_fetched_total",
			Help:      "Market records fetched, by platform.",
		}, []string{"platform"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "provider_errors_total",
			Help:      "Upstream fetch failures, by platform.",
		}, []string{"platform"}),
		MatchCandidates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "match_candidates_total",
			Help:      "Cross-platform match candidates, by matcher basis.",
		}, []string{"basis"}),
		OpportunitiesFound: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "prophitline",
			Name:      "opportunities_found",
			Help:      "Opportunities surfaced by the most recent scan.",
		}),
		EmbedCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "embed_cache_hits_total",
			Help:      "Embedding cache hits.",
		}),
		EmbedCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "prophitline",
			Name:      "embed_cache_misses_total",
			Help:      "Embedding cache misses.",
		}),
	}
}

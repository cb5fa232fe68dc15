package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the field-mapping service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	AutoMapRunsTotal         prometheus.Counter
	AutoMapUnresolvedTargets prometheus.Histogram
	TransformFailuresTotal   prometheus.CounterVec
	TemplateSuggestionsTotal prometheus.Counter
	DatasetsIngestedTotal    prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldmap_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldmap_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fieldmap_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldmap_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldmap_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		AutoMapRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldmap_automap_runs_total",
				Help: "Total auto-map runs executed",
			},
		),
		AutoMapUnresolvedTargets: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fieldmap_automap_unresolved_targets",
				Help:    "Distribution of unresolved target counts per auto-map run",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
		TransformFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldmap_transform_failures_total",
				Help: "Total transformation steps degraded to a placeholder, by transform type",
			},
			[]string{"transform_type"},
		),
		TemplateSuggestionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldmap_template_suggestions_total",
				Help: "Total template suggestion requests served",
			},
		),
		DatasetsIngestedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldmap_datasets_ingested_total",
				Help: "Total dataset snapshots ingested",
			},
		),
	}
}

// Package metrics provides Prometheus metrics for the rankd leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ranking pipeline
	leaderboardComputations prometheus.Counter
	leaderboardComputeMs    prometheus.Histogram
	recordsRanked           prometheus.Counter
	staleRecordsDropped     prometheus.Counter
	unparseableValues       prometheus.Counter

	// Cache behavior
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter
	cacheEvicts prometheus.Counter

	// Write path
	scoreSubmissions prometheus.Counter
	submissionErrors prometheus.Counter

	// Export path
	exportRows prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByComponent   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankd",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.leaderboardComputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "computations_total",
		Help:      "Total number of full leaderboard recomputations (cache misses)",
	})

	m.leaderboardComputeMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "compute_duration_milliseconds",
		Help:      "Histogram of leaderboard recomputation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recordsRanked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_ranked_total",
		Help:      "Total number of score records bucketed and ranked",
	})

	m.staleRecordsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_records_dropped_total",
		Help:      "Total number of score records dropped for referencing unknown participants",
	})

	m.unparseableValues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unparseable_values_total",
		Help:      "Total number of raw score values that failed numeric parsing",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of leaderboard cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of leaderboard cache misses",
	})

	m.cacheErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_errors_total",
		Help:      "Total number of cache operation failures (recovered locally)",
	})

	m.cacheEvicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache entries invalidated by score writes",
	})

	m.scoreSubmissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_submissions_total",
		Help:      "Total number of score records upserted",
	})

	m.submissionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_submission_errors_total",
		Help:      "Total number of failed score submissions",
	})

	m.exportRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_rows_total",
		Help:      "Total number of CSV export rows written",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of HTTP errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of internal errors by component",
		},
		[]string{"component", "error_type"},
	)
}

// RecordLeaderboardComputation increments the recomputation counter.
func RecordLeaderboardComputation() {
	globalManager.leaderboardComputations.Inc()
}

// RecordLeaderboardComputeDuration records a recomputation duration in milliseconds.
func RecordLeaderboardComputeDuration(ms float64) {
	globalManager.leaderboardComputeMs.Observe(ms)
}

// RecordRecordsRanked adds to the ranked-records counter.
func RecordRecordsRanked(n int) {
	globalManager.recordsRanked.Add(float64(n))
}

// RecordStaleRecordDropped increments the stale-reference counter.
func RecordStaleRecordDropped() {
	globalManager.staleRecordsDropped.Inc()
}

// RecordUnparseableValue increments the unparseable-value counter.
func RecordUnparseableValue() {
	globalManager.unparseableValues.Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheError increments the cache error counter.
func RecordCacheError() {
	globalManager.cacheErrors.Inc()
}

// RecordCacheInvalidation increments the cache invalidation counter.
func RecordCacheInvalidation() {
	globalManager.cacheEvicts.Inc()
}

// RecordScoreSubmission increments the score submission counter.
func RecordScoreSubmission() {
	globalManager.scoreSubmissions.Inc()
}

// RecordScoreSubmissionError increments the submission error counter.
func RecordScoreSubmissionError() {
	globalManager.submissionErrors.Inc()
}

// RecordExportRows adds to the export row counter.
func RecordExportRows(n int) {
	globalManager.exportRows.Add(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error with endpoint labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent records an internal error with component labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

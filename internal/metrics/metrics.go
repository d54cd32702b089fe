// Package metrics provides Prometheus metrics for PolicyStore
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for PolicyStore
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Ingestion metrics
	IngestsTotal    *prometheus.CounterVec
	IngestDuration  *prometheus.HistogramVec
	SectionsTotal   prometheus.Counter
	DocumentsStored prometheus.Gauge

	// Search metrics
	SearchQueriesTotal prometheus.Counter
	SearchResultsTotal prometheus.Counter
	SearchDuration     prometheus.Histogram

	// Server metrics
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	// HTTP request metrics
	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policystore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policystore_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "policystore_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Ingestion metrics
	m.IngestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policystore_ingests_total",
			Help: "Total number of document ingestions",
		},
		[]string{"format", "status"},
	)

	m.IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policystore_ingest_duration_seconds",
			Help:    "Duration of document ingestions in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"format"},
	)

	m.SectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policystore_sections_extracted_total",
			Help: "Total number of sections extracted across all ingestions",
		},
	)

	m.DocumentsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "policystore_documents_stored",
			Help: "Current number of documents in the index",
		},
	)

	// Search metrics
	m.SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policystore_search_queries_total",
			Help: "Total number of search queries",
		},
	)

	m.SearchResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policystore_search_results_total",
			Help: "Total number of search results returned",
		},
	)

	m.SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "policystore_search_duration_seconds",
			Help:    "Duration of search queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Server metrics
	m.ServerUptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "policystore_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime periodically updates the server uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request with its status
func (m *Metrics) RecordHTTPRequest(route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordIngest records a document ingestion
func (m *Metrics) RecordIngest(format, status string, sections int, duration time.Duration) {
	m.IngestsTotal.WithLabelValues(format, status).Inc()
	m.IngestDuration.WithLabelValues(format).Observe(duration.Seconds())
	m.SectionsTotal.Add(float64(sections))
}

// RecordSearch records a search query and its result count
func (m *Metrics) RecordSearch(results int, duration time.Duration) {
	m.SearchQueriesTotal.Inc()
	m.SearchResultsTotal.Add(float64(results))
	m.SearchDuration.Observe(duration.Seconds())
}

// UpdateStoreStats updates index statistics
func (m *Metrics) UpdateStoreStats(docCount int) {
	m.DocumentsStored.Set(float64(docCount))
}

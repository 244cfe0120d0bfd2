// Package metrics defines Prometheus metrics for reellog.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reellog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reellog_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reellog_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reellog_import_pages_fetched_total",
			Help: "Source pages fetched during imports, by page kind",
		},
		[]string{"kind"},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reellog_import_fetch_duration_seconds",
			Help:    "Duration of source page fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecordsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reellog_import_records_total",
			Help: "Import record outcomes (inserted, updated, skipped, errored)",
		},
		[]string{"outcome"},
	)

	ImportRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reellog_import_running",
			Help: "1 while an import run is active, 0 otherwise",
		},
	)

	MovieCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reellog_movies_total",
			Help: "Total stored movie records",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reellog_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		PagesFetched, FetchDuration, RecordsImported, ImportRunning,
		MovieCount, WSConnections,
	)
}

// Package metrics exposes staffd's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "staffd_http_requests_total"
	MetricNameHTTPRequestDuration  = "staffd_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "staffd_http_requests_in_flight"
	MetricNameEntityOperations     = "staffd_entity_operations_total"
	MetricNameValidationFailures   = "staffd_validation_failures_total"
	MetricNameBackupsTotal         = "staffd_backups_total"
	MetricNameBackupBytes          = "staffd_backup_bytes"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelEntity    = "entity"
	LabelOperation = "operation"
	LabelCode      = "code"
	LabelResult    = "result"
)

// Label values for LabelEntity
const (
	EntityDepartment = "department"
	EntityEmployee   = "employee"
)

// HTTPLatencyBuckets are tuned for an in-memory store
var HTTPLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    "HTTP request latency by method and route",
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Domain Metrics
var (
	EntityOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEntityOperations,
			Help: "Successful entity writes by entity and operation",
		},
		[]string{LabelEntity, LabelOperation},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameValidationFailures,
			Help: "Rejected field assignments by entity and error code",
		},
		[]string{LabelEntity, LabelCode},
	)
)

// Backup Metrics
var (
	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackupsTotal,
			Help: "Backup and restore runs by operation and result",
		},
		[]string{LabelOperation, LabelResult},
	)

	BackupBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBackupBytes,
			Help: "Compressed size of the most recent backup",
		},
	)
)

// RecordEntityOperation counts a successful create, update or delete
func RecordEntityOperation(entity, operation string) {
	EntityOperations.WithLabelValues(entity, operation).Inc()
}

// RecordValidationFailure counts a rejected assignment
func RecordValidationFailure(entity, code string) {
	ValidationFailures.WithLabelValues(entity, code).Inc()
}

// RecordBackup counts a backup or restore attempt
func RecordBackup(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	BackupsTotal.WithLabelValues(operation, result).Inc()
}

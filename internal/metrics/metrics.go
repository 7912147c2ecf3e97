// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package metrics

import (
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBTransactionRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_transaction_retries_total",
			Help: "Total number of transactions retried after a write conflict",
		},
		[]string{"operation"},
	)

	// Image Store Metrics
	ImageStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_store_operations_total",
			Help: "Total number of image store operations",
		},
		[]string{"operation", "result"},
	)

	ImageStoreBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_store_bytes_written_total",
			Help: "Total bytes of image data written",
		},
	)

	ImageStoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_store_gc_runs_total",
			Help: "Total number of value log garbage collection runs",
		},
		[]string{"result"}, // "rewritten", "nothing", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Metrics
	ComboLikeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "combo_like_toggles_total",
			Help: "Total number of combo like toggles",
		},
		[]string{"action"}, // "like", "unlike"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// notFoundError is implemented by sentinel errors that mean "no row".
type notFoundError interface {
	NotFound() bool
}

// classifyDBError keeps the error_type label cardinality bounded.
func classifyDBError(err error) string {
	var nf notFoundError
	if errors.As(err, &nf) && nf.NotFound() {
		return "not_found"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "no rows"):
		return "not_found"
	case strings.Contains(msg, "conflict"):
		return "conflict"
	case strings.Contains(msg, "constraint") || strings.Contains(msg, "duplicate"):
		return "constraint"
	case strings.Contains(msg, "context deadline") || strings.Contains(msg, "canceled"):
		return "timeout"
	default:
		return "other"
	}
}

// RecordTransactionRetry records a transaction retried after a conflict
func RecordTransactionRetry(operation string) {
	DBTransactionRetries.WithLabelValues(operation).Inc()
}

// RecordImageOperation records an image store operation
func RecordImageOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ImageStoreOperations.WithLabelValues(operation, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordLikeToggle records a like or unlike
func RecordLikeToggle(liked bool) {
	action := "unlike"
	if liked {
		action = "like"
	}
	ComboLikeToggles.WithLabelValues(action).Inc()
}

// SetAppInfo publishes the build version
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

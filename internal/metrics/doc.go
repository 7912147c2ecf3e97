// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package metrics provides Prometheus metrics for the BeyLog server.

Metrics are registered with the default registry through promauto and are
exposed at /metrics by promhttp.

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}
  - duckdb_transaction_retries_total{operation}

Image store:
  - image_store_operations_total{operation, result}
  - image_store_bytes_written_total
  - image_store_gc_runs_total{result}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Catalog:
  - combo_like_toggles_total{action}

System:
  - app_info{version, go_version}
  - app_uptime_seconds

Authentication counters (token verifications, gate decisions, guard
outcomes) live in the auth package and authorization decisions in authz.

# Cardinality

The endpoint label is the chi route pattern, never the raw path, and
error_type is one of a fixed set of classes.
*/
package metrics

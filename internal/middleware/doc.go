// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package middleware provides infrastructure HTTP middleware for the BeyLog router.

Key Components:

  - RequestID: propagates or generates an X-Request-ID and stores it in the
    logging context
  - PrometheusMetrics: request counter, latency histogram and active gauge,
    labelled with the chi route pattern
  - AccessLog: one structured zerolog line per request

Authentication (Edge Gate, Route Guard) lives in the auth package. These
components sit in front of it:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(gate.Middleware)
*/
package middleware

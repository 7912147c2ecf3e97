// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/metrics"
	"github.com/tomtom215/beylog/internal/models"
)

// healthCheckTimeout bounds the dependency probes of the health endpoint.
const healthCheckTimeout = 5 * time.Second

// Health reports database and image store reachability.
//
// @Summary Health check
// @Description Pings the catalog database and counts parts. Returns 503 with database "disconnected" when the catalog is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse{data=models.HealthStatus}
// @Failure 503 {object} APIResponse{error=APIError{details=models.HealthStatus}}
// @Router /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	metrics.AppUptime.Set(time.Since(h.startTime).Seconds())

	status := models.HealthStatus{
		Status:   "ok",
		Database: "connected",
		Images:   "connected",
		Version:  h.version,
	}

	if err := h.images.Ping(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Health check: image store unavailable")
		status.Images = "disconnected"
		status.Status = "degraded"
	}

	count, err := h.checkDatabase(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Health check: database unavailable")
		status.Status = "error"
		status.Database = "disconnected"
		rw.ServiceUnavailable("Database unavailable", status)
		return
	}
	status.PartCount = count

	rw.Success(status)
}

func (h *Handler) checkDatabase(ctx context.Context) (int64, error) {
	if err := h.db.Ping(ctx); err != nil {
		return 0, err
	}
	return h.db.CountAllParts(ctx)
}

// AdminStats returns catalog counters for the admin dashboard.
//
// @Summary Catalog statistics
// @Tags admin
// @Produce json
// @Success 200 {object} APIResponse{data=models.CatalogStats}
// @Failure 403 {object} APIResponse
// @Router /api/admin/stats [get]
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats, err := h.db.GetCatalogStats(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(stats)
}

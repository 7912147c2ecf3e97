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
)

// seedTimeout bounds a catalog reset.
const seedTimeout = 2 * time.Minute

// SeedCatalog resets the catalog to the default GolemRock 1-60 UN entry.
// Parts, beyblades, collections, combos and likes are wiped; accounts stay.
// The endpoint is disabled unless database.seed_enabled is set.
//
// @Summary Reset catalog
// @Description Wipes catalog data and writes the default beyblade. Requires database.seed_enabled.
// @Tags admin
// @Produce json
// @Success 200 {object} APIResponse{data=database.SeedResult}
// @Failure 403 {object} APIResponse "Forbidden or seeding disabled"
// @Failure 500 {object} APIResponse
// @Router /api/seed [post]
func (h *Handler) SeedCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !h.config.Database.SeedEnabled {
		logging.Ctx(r.Context()).Warn().Msg("Blocked catalog seed: seeding is disabled")
		rw.Error(http.StatusForbidden, ErrCodeSeedDisabled, "Catalog seeding is disabled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seedTimeout)
	defer cancel()

	result, err := h.db.ResetCatalog(ctx)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	if len(result.RemovedPartIDs) > 0 {
		if err := h.images.Delete(ctx, result.RemovedPartIDs...); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("parts", len(result.RemovedPartIDs)).Msg("Failed to delete images of removed parts")
		}
	}

	logging.Ctx(ctx).Info().
		Int("removed_parts", len(result.RemovedPartIDs)).
		Int64("beyblade_id", result.Beyblade.ID).
		Msg("Catalog reset to defaults")
	rw.Success(result)
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// ListBeyblades returns every registered beyblade with part images.
// Mounted both as the admin registry and as the authenticated list.
//
// @Summary List beyblades
// @Tags beyblades
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.BeybladeView}
// @Router /api/beyblades [get]
// @Router /api/beyblades/list [get]
func (h *Handler) ListBeyblades(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	views, err := h.db.ListBeyblades(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	h.attachBeybladeImages(r.Context(), views)
	rw.Success(views)
}

// LastBeyblade returns a summary card of the newest beyblade, or a
// placeholder card when none exist.
//
// @Summary Newest beyblade
// @Tags beyblades
// @Produce json
// @Success 200 {object} APIResponse{data=models.BeybladeSummary}
// @Router /api/beyblades/last [get]
func (h *Handler) LastBeyblade(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	view, err := h.db.LatestBeyblade(r.Context())
	if errors.Is(err, database.ErrNotFound) {
		rw.Success(models.PlaceholderBeyblade())
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	views := []models.BeybladeView{*view}
	h.attachBeybladeImages(r.Context(), views)
	rw.Success(beybladeSummary(&views[0]))
}

// GetBeyblade returns one beyblade with its parts.
//
// @Summary Get beyblade
// @Tags beyblades
// @Produce json
// @Param id path int true "Beyblade ID"
// @Success 200 {object} APIResponse{data=models.BeybladeView}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/beyblades/{id} [get]
func (h *Handler) GetBeyblade(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := pathID(rw, r, "id", "beyblade")
	if !ok {
		return
	}

	view, err := h.db.GetBeyblade(r.Context(), id)
	if err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}

	views := []models.BeybladeView{*view}
	h.attachBeybladeImages(r.Context(), views)
	rw.Success(views[0])
}

// CreateBeyblade registers a beyblade. Balance is derived from the other
// three stats.
//
// @Summary Register beyblade
// @Tags beyblades
// @Accept json
// @Produce json
// @Param request body models.BeybladeRequest true "Parts and stats"
// @Success 201 {object} APIResponse{data=models.BeybladeView}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse "Part not found"
// @Router /api/beyblades [post]
func (h *Handler) CreateBeyblade(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.BeybladeRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	created, err := h.db.CreateBeyblade(r.Context(), partSetOf(req.BladeID, req.RatchetID, req.BitID), statsOf(&req))
	if err != nil {
		respondDataError(rw, err, "Part")
		return
	}

	view, err := h.db.GetBeyblade(r.Context(), created.ID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("beyblade_id", view.ID).Str("name", view.Name()).Msg("Beyblade registered")

	views := []models.BeybladeView{*view}
	h.attachBeybladeImages(r.Context(), views)
	rw.Created(views[0])
}

// UpdateBeyblade replaces the parts and stats of a beyblade.
//
// @Summary Update beyblade
// @Tags beyblades
// @Accept json
// @Produce json
// @Param id path int true "Beyblade ID"
// @Param request body models.BeybladeRequest true "Parts and stats"
// @Success 200 {object} APIResponse{data=models.BeybladeView}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/beyblades/{id} [put]
func (h *Handler) UpdateBeyblade(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := pathID(rw, r, "id", "beyblade")
	if !ok {
		return
	}

	var req models.BeybladeRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	view, err := h.db.UpdateBeyblade(r.Context(), id, partSetOf(req.BladeID, req.RatchetID, req.BitID), statsOf(&req))
	if err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}

	views := []models.BeybladeView{*view}
	h.attachBeybladeImages(r.Context(), views)
	rw.Success(views[0])
}

// DeleteBeyblade removes a beyblade and every collection entry for it.
//
// @Summary Delete beyblade
// @Tags beyblades
// @Produce json
// @Param id path int true "Beyblade ID"
// @Success 200 {object} APIResponse{data=MessageResponse}
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/beyblades/{id} [delete]
func (h *Handler) DeleteBeyblade(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := pathID(rw, r, "id", "beyblade")
	if !ok {
		return
	}

	if err := h.db.DeleteBeyblade(r.Context(), id); err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}

	logging.Ctx(r.Context()).Info().Int64("beyblade_id", id).Msg("Beyblade deleted")
	rw.Success(MessageResponse{Message: "Beyblade deleted"})
}

func partSetOf(bladeID, ratchetID, bitID int64) database.PartSet {
	return database.PartSet{BladeID: bladeID, RatchetID: ratchetID, BitID: bitID}
}

func statsOf(req *models.BeybladeRequest) database.BeybladeStats {
	return database.BeybladeStats{Attack: req.Attack, Defense: req.Defense, Stamina: req.Stamina}
}

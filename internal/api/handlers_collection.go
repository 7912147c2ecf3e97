// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"net/http"

	"github.com/tomtom215/beylog/internal/models"
)

// CollectionCheckResponse answers whether a beyblade is in the caller's collection.
type CollectionCheckResponse struct {
	IsInCollection bool `json:"isInCollection"`
}

// ListCollection returns the caller's collection, newest first.
//
// @Summary My collection
// @Tags collection
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.CollectionEntry}
// @Router /api/beyblades/collection [get]
// @Router /api/colecao [get]
func (h *Handler) ListCollection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	entries, err := h.db.ListCollection(r.Context(), p.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	views := make([]models.BeybladeView, len(entries))
	for i := range entries {
		views[i] = entries[i].Beyblade
	}
	h.attachBeybladeImages(r.Context(), views)
	for i := range entries {
		entries[i].Beyblade = views[i]
	}
	rw.Success(entries)
}

// AddToCollection adds a beyblade to the caller's collection.
//
// @Summary Add to collection
// @Tags collection
// @Accept json
// @Produce json
// @Param request body models.CollectionAddRequest true "Beyblade"
// @Success 201 {object} APIResponse{data=models.CollectionEntry}
// @Failure 400 {object} APIResponse "Missing id or already in collection"
// @Failure 404 {object} APIResponse "Unknown beyblade"
// @Router /api/beyblades/collection/add [post]
func (h *Handler) AddToCollection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	var req models.CollectionAddRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	entry, err := h.db.AddToCollection(r.Context(), p.UserID, req.BeybladeID)
	if err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}

	views := []models.BeybladeView{entry.Beyblade}
	h.attachBeybladeImages(r.Context(), views)
	entry.Beyblade = views[0]
	rw.Created(entry)
}

// CheckCollection reports whether a beyblade is in the caller's collection.
//
// @Summary Check collection
// @Tags collection
// @Produce json
// @Param id path int true "Beyblade ID"
// @Success 200 {object} APIResponse{data=CollectionCheckResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/beyblades/collection/check/{id} [get]
func (h *Handler) CheckCollection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	id, ok := pathID(rw, r, "id", "beyblade")
	if !ok {
		return
	}

	in, err := h.db.IsInCollection(r.Context(), p.UserID, id)
	if err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}
	rw.Success(CollectionCheckResponse{IsInCollection: in})
}

// RemoveFromCollection removes a beyblade from the caller's collection.
//
// @Summary Remove from collection
// @Tags collection
// @Produce json
// @Param id path int true "Beyblade ID"
// @Success 200 {object} APIResponse{data=MessageResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/beyblades/collection/{id} [delete]
func (h *Handler) RemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	id, ok := pathID(rw, r, "id", "beyblade")
	if !ok {
		return
	}

	if err := h.db.RemoveFromCollection(r.Context(), p.UserID, id); err != nil {
		respondDataError(rw, err, "Beyblade")
		return
	}
	rw.Success(MessageResponse{Message: "Removed from collection"})
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/authz"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// TopComboResponse holds the caller's most liked combo, or null.
type TopComboResponse struct {
	TopCombo *models.ComboView `json:"topCombo"`
}

// TopUserCombo returns the caller's most liked combo.
//
// @Summary My top combo
// @Tags combos
// @Produce json
// @Success 200 {object} APIResponse{data=TopComboResponse}
// @Router /api/combos [get]
func (h *Handler) TopUserCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	view, err := h.db.TopUserCombo(r.Context(), p.UserID)
	if errors.Is(err, database.ErrNotFound) {
		rw.Success(TopComboResponse{})
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)
	rw.Success(TopComboResponse{TopCombo: &views[0]})
}

// CreateCombo creates a combo owned by the caller, with zero likes.
//
// @Summary Create combo
// @Tags combos
// @Accept json
// @Produce json
// @Param request body models.ComboRequest true "Parts"
// @Success 201 {object} APIResponse{data=models.ComboView}
// @Failure 400 {object} APIResponse "Missing or mistyped part"
// @Failure 404 {object} APIResponse "Unknown part"
// @Router /api/combos [post]
func (h *Handler) CreateCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	view, ok := h.createCombo(rw, r)
	if !ok {
		return
	}
	rw.Created(view)
}

// AddCombo creates a combo and answers with its feed card.
//
// @Summary Create combo (card)
// @Tags combos
// @Accept json
// @Produce json
// @Param request body models.ComboRequest true "Parts"
// @Success 201 {object} APIResponse{data=models.ComboSummary}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/combos/add [post]
func (h *Handler) AddCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	view, ok := h.createCombo(rw, r)
	if !ok {
		return
	}
	rw.Created(view.Summary(false))
}

func (h *Handler) createCombo(rw *ResponseWriter, r *http.Request) (*models.ComboView, bool) {
	p, ok := requirePrincipal(rw, r)
	if !ok {
		return nil, false
	}

	var req models.ComboRequest
	if !decodeAndValidate(rw, r, &req) {
		return nil, false
	}

	view, err := h.db.CreateCombo(r.Context(), p.UserID, partSetOf(req.BladeID, req.RatchetID, req.BitID))
	if err != nil {
		respondDataError(rw, err, "Part")
		return nil, false
	}

	logging.Ctx(r.Context()).Info().Int64("combo_id", view.ID).Str("name", view.Name()).Msg("Combo created")

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)
	return &views[0], true
}

// CommunityCombos lists every combo, most liked first, with the caller's
// like state.
//
// @Summary Community combos
// @Tags combos
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.ComboSummary}
// @Router /api/combos/community [get]
func (h *Handler) CommunityCombos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	views, err := h.db.ListCombos(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	liked, err := h.db.LikedComboIDs(r.Context(), p.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	h.attachComboImages(r.Context(), views)
	cards := make([]models.ComboSummary, len(views))
	for i := range views {
		cards[i] = views[i].Summary(liked[views[i].ID])
	}
	rw.Success(cards)
}

// TopDayCombo returns today's most liked combo, or null. "Today" starts at
// local midnight.
//
// @Summary Combo of the day
// @Tags combos
// @Produce json
// @Success 200 {object} APIResponse{data=models.ComboSummary}
// @Router /api/combos/top-day [get]
func (h *Handler) TopDayCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	view, err := h.db.TopComboSince(r.Context(), startOfDay(h.now()))
	if errors.Is(err, database.ErrNotFound) {
		rw.Success(nil)
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)

	liked, err := h.db.LikedComboIDs(r.Context(), p.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(views[0].Summary(liked[view.ID]))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UserCombos lists the caller's combos, newest first.
//
// @Summary My combos
// @Tags combos
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.ComboView}
// @Router /api/combos/user [get]
func (h *Handler) UserCombos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	views, err := h.db.ListUserCombos(r.Context(), p.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	h.attachComboImages(r.Context(), views)
	rw.Success(views)
}

// ComboDetail returns one combo with full parts.
//
// @Summary Combo detail
// @Tags combos
// @Produce json
// @Param id path int true "Combo ID"
// @Success 200 {object} APIResponse{data=models.ComboView}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/combos/detail/{id} [get]
func (h *Handler) ComboDetail(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := pathID(rw, r, "id", "combo")
	if !ok {
		return
	}

	view, err := h.db.GetCombo(r.Context(), id)
	if err != nil {
		respondDataError(rw, err, "Combo")
		return
	}

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)
	rw.Success(views[0])
}

// UpdateCombo changes the parts of a combo. Only the owner or a role
// holding combos.moderate may do so.
//
// @Summary Update combo
// @Tags combos
// @Accept json
// @Produce json
// @Param id path int true "Combo ID"
// @Param request body models.ComboRequest true "Parts"
// @Success 200 {object} APIResponse{data=models.ComboView}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/combos/{id} [put]
func (h *Handler) UpdateCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := h.authorizeComboChange(w, rw, r)
	if !ok {
		return
	}

	var req models.ComboRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	view, err := h.db.UpdateComboParts(r.Context(), id, partSetOf(req.BladeID, req.RatchetID, req.BitID))
	if err != nil {
		respondDataError(rw, err, "Combo")
		return
	}

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)
	rw.Success(views[0])
}

// DeleteCombo removes a combo and its likes. Only the owner or a role
// holding combos.moderate may do so.
//
// @Summary Delete combo
// @Tags combos
// @Produce json
// @Param id path int true "Combo ID"
// @Success 200 {object} APIResponse{data=MessageResponse}
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/combos/{id} [delete]
func (h *Handler) DeleteCombo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := h.authorizeComboChange(w, rw, r)
	if !ok {
		return
	}

	if err := h.db.DeleteCombo(r.Context(), id); err != nil {
		respondDataError(rw, err, "Combo")
		return
	}

	logging.Ctx(r.Context()).Info().Int64("combo_id", id).Msg("Combo deleted")
	rw.Success(MessageResponse{Message: "Combo deleted"})
}

// authorizeComboChange loads the combo named by {id} and admits its owner
// or a principal holding combos.moderate.
func (h *Handler) authorizeComboChange(w http.ResponseWriter, rw *ResponseWriter, r *http.Request) (int64, bool) {
	p, ok := requirePrincipal(rw, r)
	if !ok {
		return 0, false
	}
	id, ok := pathID(rw, r, "id", "combo")
	if !ok {
		return 0, false
	}

	combo, err := h.db.GetCombo(r.Context(), id)
	if err != nil {
		respondDataError(rw, err, "Combo")
		return 0, false
	}
	if combo.UserID == p.UserID {
		return id, true
	}

	if err := h.guard.Authorize(p, authz.ModerateCombos); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			h.security.LogAccessDenied(p.UserID, r.URL.Path, r.RemoteAddr, "not_owner")
		}
		WriteAuthError(w, r, err)
		return 0, false
	}
	return id, true
}

// ToggleLike likes the combo for the caller, or removes an existing like.
//
// @Summary Toggle like
// @Tags combos
// @Produce json
// @Param id path int true "Combo ID"
// @Success 200 {object} APIResponse{data=models.ComboSummary}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/combos/{id}/like [post]
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	id, ok := pathID(rw, r, "id", "combo")
	if !ok {
		return
	}

	view, liked, err := h.db.ToggleLike(r.Context(), id, p.UserID)
	if err != nil {
		respondDataError(rw, err, "Combo")
		return
	}

	views := []models.ComboView{*view}
	h.attachComboImages(r.Context(), views)
	rw.Success(views[0].Summary(liked))
}

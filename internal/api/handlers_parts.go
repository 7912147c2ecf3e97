// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// ImageResponse carries one base64 image.
type ImageResponse struct {
	Image string `json:"image"`
}

// ImageUploadResponse confirms a stored image.
type ImageUploadResponse struct {
	Message string           `json:"message"`
	Image   *imagestore.Meta `json:"image"`
}

// PartCatalog returns every part grouped by type, each with its image.
//
// @Summary Part catalog
// @Tags parts
// @Produce json
// @Success 200 {object} APIResponse{data=models.PartCatalog}
// @Router /api/parts [get]
func (h *Handler) PartCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	var lists [3][]models.Part
	for i, t := range models.PartTypes {
		parts, err := h.db.ListParts(ctx, t)
		if err != nil {
			rw.DatabaseError(err)
			return
		}
		lists[i] = parts
	}

	rw.Success(models.PartCatalog{
		Blades:   h.partViews(ctx, lists[0]),
		Ratchets: h.partViews(ctx, lists[1]),
		Bits:     h.partViews(ctx, lists[2]),
	})
}

// CreatePart adds a part with an optional base64 image.
//
// @Summary Create part
// @Tags parts
// @Accept json
// @Produce json
// @Param request body models.CreatePartRequest true "Part"
// @Success 201 {object} APIResponse{data=models.PartView}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/parts [post]
func (h *Handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	var req models.CreatePartRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	partType, _ := models.ParsePartType(req.Type)

	var image []byte
	if req.Image != "" {
		var err error
		if image, err = imagestore.DecodeBase64Image(req.Image); err != nil {
			respondImageError(rw, err)
			return
		}
	}

	part, err := h.db.CreatePart(ctx, req.Name, partType)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	view := models.PartView{ID: part.ID, Name: part.Name, Type: part.Type, Images: []models.PartImage{}}
	if image != nil {
		if err := h.images.Put(ctx, part.ID, image); err != nil {
			// Do not leave an image-less part behind a failed upload.
			if derr := h.db.DeletePart(ctx, part.ID); derr != nil {
				logging.Ctx(ctx).Error().Err(derr).Int64("part_id", part.ID).Msg("Failed to roll back part after image error")
			}
			respondImageError(rw, err)
			return
		}
		view.Images = append(view.Images, models.PartImage{ID: part.ID, Image: imagestore.EncodeBase64(image)})
	}

	logging.Ctx(ctx).Info().
		Int64("part_id", part.ID).
		Str("type", string(part.Type)).
		Bool("has_image", image != nil).
		Msg("Part created")
	rw.Created(view)
}

// DeletePart removes an unused part and its image.
//
// @Summary Delete part
// @Tags parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} APIResponse{data=MessageResponse}
// @Failure 400 {object} APIResponse "Part in use"
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/parts/{id} [delete]
func (h *Handler) DeletePart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	id, ok := pathID(rw, r, "id", "part")
	if !ok {
		return
	}

	if err := h.db.DeletePart(ctx, id); err != nil {
		respondDataError(rw, err, "Part")
		return
	}
	if err := h.images.Delete(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("part_id", id).Msg("Failed to delete part image")
	}

	logging.Ctx(ctx).Info().Int64("part_id", id).Msg("Part deleted")
	rw.Success(MessageResponse{Message: "Part deleted"})
}

// PartImage serves the raw image of a part as image/jpeg.
//
// @Summary Part image
// @Tags parts
// @Produce jpeg
// @Param id path int true "Part ID"
// @Success 200 {file} binary
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/parts/{id}/image [get]
func (h *Handler) PartImage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := pathID(rw, r, "id", "part")
	if !ok {
		return
	}

	data, err := h.images.Get(r.Context(), id)
	if err != nil {
		respondImageError(rw, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write image")
	}
}

// UploadPartImage replaces the image of a part.
//
// @Summary Upload part image
// @Tags parts
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Param request body models.PartImageRequest true "Base64 image"
// @Success 200 {object} APIResponse{data=ImageUploadResponse}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/parts/{id}/image [post]
func (h *Handler) UploadPartImage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	id, ok := pathID(rw, r, "id", "part")
	if !ok {
		return
	}

	var req models.PartImageRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	if _, err := h.db.GetPart(ctx, id); err != nil {
		respondDataError(rw, err, "Part")
		return
	}

	data, err := imagestore.DecodeBase64Image(req.Image)
	if err != nil {
		respondImageError(rw, err)
		return
	}
	if err := h.images.Put(ctx, id, data); err != nil {
		respondImageError(rw, err)
		return
	}

	meta, err := h.images.Stat(ctx, id)
	if err != nil {
		respondImageError(rw, err)
		return
	}
	rw.Success(ImageUploadResponse{Message: "Image uploaded", Image: meta})
}

// PartRefs returns id and name of every part of a type.
func (h *Handler) PartRefs(partType models.PartType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w, r)

		parts, err := h.db.ListParts(r.Context(), partType)
		if err != nil {
			rw.DatabaseError(err)
			return
		}
		refs := make([]models.PartRef, len(parts))
		for i, p := range parts {
			refs[i] = models.PartRef{ID: p.ID, Name: p.Name}
		}
		rw.Success(refs)
	}
}

// PartsOfType lists every part of a type with its image.
func (h *Handler) PartsOfType(partType models.PartType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w, r)

		parts, err := h.db.ListParts(r.Context(), partType)
		if err != nil {
			rw.DatabaseError(err)
			return
		}
		rw.Success(h.partViews(r.Context(), parts))
	}
}

// TypedPartImage returns the base64 image of a part, which must be of
// partType.
func (h *Handler) TypedPartImage(partType models.PartType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w, r)
		ctx := r.Context()

		id, ok := pathID(rw, r, "id", string(partType))
		if !ok {
			return
		}

		part, err := h.db.GetPart(ctx, id)
		if errors.Is(err, database.ErrNotFound) || (err == nil && part.Type != partType) {
			rw.NotFound(string(partType) + " not found")
			return
		}
		if err != nil {
			rw.DatabaseError(err)
			return
		}

		data, err := h.images.Get(ctx, id)
		if err != nil {
			respondImageError(rw, err)
			return
		}
		rw.Success(ImageResponse{Image: imagestore.EncodeBase64(data)})
	}
}

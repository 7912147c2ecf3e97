// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"context"

	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// loadImages fetches the images of the given parts in one read. Image
// failures degrade to image-less views; the catalog data is still served.
func (h *Handler) loadImages(ctx context.Context, partIDs []int64) map[int64][]byte {
	if len(partIDs) == 0 {
		return map[int64][]byte{}
	}
	images, err := h.images.GetMany(ctx, partIDs)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("parts", len(partIDs)).Msg("Failed to load part images")
		return map[int64][]byte{}
	}
	return images
}

// withImages sets v.Images from images. Images is never nil so it encodes
// as [].
func withImages(v *models.PartView, images map[int64][]byte) {
	v.Images = []models.PartImage{}
	if data, ok := images[v.ID]; ok {
		v.Images = append(v.Images, models.PartImage{ID: v.ID, Image: imagestore.EncodeBase64(data)})
	}
}

func (h *Handler) partViews(ctx context.Context, parts []models.Part) []models.PartView {
	ids := make([]int64, len(parts))
	for i := range parts {
		ids[i] = parts[i].ID
	}
	images := h.loadImages(ctx, ids)

	views := make([]models.PartView, len(parts))
	for i, p := range parts {
		views[i] = models.PartView{ID: p.ID, Name: p.Name, Type: p.Type}
		withImages(&views[i], images)
	}
	return views
}

func (h *Handler) attachBeybladeImages(ctx context.Context, views []models.BeybladeView) {
	ids := make([]int64, 0, len(views)*3)
	for i := range views {
		ids = append(ids, views[i].Blade.ID, views[i].Ratchet.ID, views[i].Bit.ID)
	}
	images := h.loadImages(ctx, ids)
	for i := range views {
		withImages(&views[i].Blade, images)
		withImages(&views[i].Ratchet, images)
		withImages(&views[i].Bit, images)
	}
}

func (h *Handler) attachComboImages(ctx context.Context, views []models.ComboView) {
	ids := make([]int64, 0, len(views)*3)
	for i := range views {
		ids = append(ids, views[i].Blade.ID, views[i].Ratchet.ID, views[i].Bit.ID)
	}
	images := h.loadImages(ctx, ids)
	for i := range views {
		withImages(&views[i].Blade, images)
		withImages(&views[i].Ratchet, images)
		withImages(&views[i].Bit, images)
	}
}

// beybladeSummary builds the compact card for the newest beyblade.
func beybladeSummary(v *models.BeybladeView) models.BeybladeSummary {
	id := v.ID
	image := models.PlaceholderBeyblade().Image
	if len(v.Blade.Images) > 0 {
		image = "data:image/jpeg;base64," + v.Blade.Images[0].Image
	}
	return models.BeybladeSummary{
		ID:    &id,
		Name:  v.Name(),
		Image: image,
		Type:  v.Blade.Name,
		Stats: models.BeybladeStats{
			Attack:  v.Attack,
			Defense: v.Defense,
			Stamina: v.Stamina,
			Balance: v.Balance,
		},
	}
}

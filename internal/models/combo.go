// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package models

import "time"

// ComboView is a user-built assembly of three parts, with full parts and
// owner. Fields are flat: go-json cannot encode an embedded struct behind the
// only pointer field of a wrapper.
type ComboView struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userId"`
	BladeID   int64        `json:"bladeId"`
	RatchetID int64        `json:"ratchetId"`
	BitID     int64        `json:"bitId"`
	Likes     int          `json:"likes"`
	CreatedAt time.Time    `json:"createdAt"`
	Blade     PartView     `json:"blade"`
	Ratchet   PartView     `json:"ratchet"`
	Bit       PartView     `json:"bit"`
	User      *UserSummary `json:"user,omitempty"`
}

// Name returns "Blade Ratchet Bit".
func (v *ComboView) Name() string {
	return v.Blade.Name + " " + v.Ratchet.Name + " " + v.Bit.Name
}

// Summary flattens v into a feed card. liked is the viewer's like state.
func (v *ComboView) Summary(liked bool) ComboSummary {
	var image *string
	if img := v.Blade.FirstImage(); img != "" {
		image = &img
	}
	return ComboSummary{
		ID:     v.ID,
		Name:   v.Name(),
		Image:  image,
		Likes:  v.Likes,
		Liked:  liked,
		UserID: v.UserID,
		User:   v.User,
	}
}

// ComboSummary is the feed card for a combo. Image is the blade image.
type ComboSummary struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Image  *string      `json:"image"`
	Likes  int          `json:"likes"`
	Liked  bool         `json:"liked"`
	UserID int64        `json:"userId"`
	User   *UserSummary `json:"user"`
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package models

import (
	"strings"
	"time"
)

// PartType is the kind of a catalog part.
type PartType string

const (
	PartBlade   PartType = "Blade"
	PartRatchet PartType = "Ratchet"
	PartBit     PartType = "Bit"
)

// PartTypes lists every part type in assembly order.
var PartTypes = []PartType{PartBlade, PartRatchet, PartBit}

// ParsePartType accepts "Blade", "blade", "blades" and the like.
func ParsePartType(s string) (PartType, bool) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "blade":
		return PartBlade, true
	case "ratchet":
		return PartRatchet, true
	case "bit":
		return PartBit, true
	default:
		return "", false
	}
}

// Plural returns the lowercase collection name ("blades").
func (t PartType) Plural() string {
	return strings.ToLower(string(t)) + "s"
}

// Part is a catalog entry.
type Part struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      PartType  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// PartImage is one image of a part, base64-encoded.
type PartImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// PartView is a part with its images for API responses.
type PartView struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Type   PartType    `json:"type"`
	Images []PartImage `json:"images"`
}

// FirstImage returns the first image or "".
func (v *PartView) FirstImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0].Image
}

// PartRef is the minimal id+name listing.
type PartRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PartCatalog groups part views by type.
type PartCatalog struct {
	Blades   []PartView `json:"blades"`
	Ratchets []PartView `json:"ratchets"`
	Bits     []PartView `json:"bits"`
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package models

import (
	"math"
	"time"
)

// Beyblade is a registered Blade+Ratchet+Bit assembly with stats.
type Beyblade struct {
	ID        int64     `json:"id"`
	BladeID   int64     `json:"bladeId"`
	RatchetID int64     `json:"ratchetId"`
	BitID     int64     `json:"bitId"`
	Attack    int       `json:"attack"`
	Defense   int       `json:"defense"`
	Stamina   int       `json:"stamina"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// Balance derives the balance stat: the rounded mean of the other three.
func Balance(attack, defense, stamina int) int {
	return int(math.Round(float64(attack+defense+stamina) / 3))
}

// BeybladeView is a beyblade with its parts for API responses.
type BeybladeView struct {
	Beyblade
	Blade   PartView `json:"blade"`
	Ratchet PartView `json:"ratchet"`
	Bit     PartView `json:"bit"`
}

// Name returns "Blade Ratchet Bit".
func (v *BeybladeView) Name() string {
	return v.Blade.Name + " " + v.Ratchet.Name + " " + v.Bit.Name
}

// BeybladeStats is the stat block of a summary.
type BeybladeStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Stamina int `json:"stamina"`
	Balance int `json:"balance"`
}

// BeybladeSummary is the compact card shown for the newest beyblade.
type BeybladeSummary struct {
	ID    *int64        `json:"id"`
	Name  string        `json:"name"`
	Image string        `json:"image"`
	Type  string        `json:"type"`
	Stats BeybladeStats `json:"stats"`
}

// PlaceholderBeyblade is returned when the catalog holds no beyblades.
func PlaceholderBeyblade() BeybladeSummary {
	return BeybladeSummary{
		Name:  "No beyblade registered",
		Image: "/placeholder.svg?height=192&width=192",
		Type:  "-",
	}
}

// CollectionEntry is a beyblade in a user's collection.
type CollectionEntry struct {
	ID       int64        `json:"id"`
	AddedAt  time.Time    `json:"addedAt"`
	Beyblade BeybladeView `json:"beyblade"`
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package models

// CatalogStats are the admin dashboard counters.
type CatalogStats struct {
	Beyblades int64 `json:"beyblades"`
	Blades    int64 `json:"blades"`
	Ratchets  int64 `json:"ratchets"`
	Bits      int64 `json:"bits"`
	Users     int64 `json:"users"`
	Combos    int64 `json:"combos"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Images    string `json:"images"`
	PartCount int64  `json:"partCount"`
	Version   string `json:"version,omitempty"`
}

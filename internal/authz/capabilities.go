// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package authz

import "github.com/tomtom215/beylog/internal/auth"

// Role-restricted operations. Object and Action must match policy.csv.
var (
	CreatePart = &auth.Capability{Object: "parts", Action: "create",
		Denied: "Only administrators can add parts"}
	UpdatePart = &auth.Capability{Object: "parts", Action: "update",
		Denied: "Only administrators can change part images"}
	DeletePart = &auth.Capability{Object: "parts", Action: "delete",
		Denied: "Only administrators can delete parts"}

	ReadBeyblades = &auth.Capability{Object: "beyblades", Action: "read",
		Denied: "Only administrators can view the full beyblade registry"}
	CreateBeyblade = &auth.Capability{Object: "beyblades", Action: "create",
		Denied: "Only administrators can register beyblades"}
	UpdateBeyblade = &auth.Capability{Object: "beyblades", Action: "update",
		Denied: "Only administrators can edit beyblades"}
	DeleteBeyblade = &auth.Capability{Object: "beyblades", Action: "delete",
		Denied: "Only administrators can delete beyblades"}

	CreateUser = &auth.Capability{Object: "users", Action: "create",
		Denied: "Only administrators can register users"}
	ReadStats = &auth.Capability{Object: "stats", Action: "read",
		Denied: "Only administrators can view statistics"}
	SeedCatalog = &auth.Capability{Object: "catalog", Action: "seed",
		Denied: "Only administrators can reset the catalog"}

	// ModerateCombos lets a role edit or delete combos it does not own.
	ModerateCombos = &auth.Capability{Object: "combos", Action: "moderate",
		Denied: "Only the owner or an administrator can change this combo"}
)

// All lists every capability, for policy consistency checks.
var All = []*auth.Capability{
	CreatePart, UpdatePart, DeletePart,
	ReadBeyblades, CreateBeyblade, UpdateBeyblade, DeleteBeyblade,
	CreateUser, ReadStats, SeedCatalog, ModerateCombos,
}

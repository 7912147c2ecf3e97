// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package imagestore keeps part images in BadgerDB, keyed by part id.

Each part has at most one image. Two keys are written per image:

	img:<part id>   raw image bytes
	meta:<part id>  JSON metadata (size, update time)

Images arrive from the API as base64, optionally as a data URL
("data:image/png;base64,..."). DecodeBase64Image strips the prefix.

GCService is a suture service that periodically reclaims value log space.

# Usage

	store, err := imagestore.Open(&cfg.Images)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(ctx, part.ID, data); err != nil {
		return err
	}
*/
package imagestore

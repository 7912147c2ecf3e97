// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/beylog/internal/models"
)

// GetCatalogStats returns the admin dashboard counters.
func (db *DB) GetCatalogStats(ctx context.Context) (_ *models.CatalogStats, err error) {
	defer observe("select", "stats", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var s models.CatalogStats
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM beyblades),
			(SELECT COUNT(*) FROM parts WHERE type = 'Blade'),
			(SELECT COUNT(*) FROM parts WHERE type = 'Ratchet'),
			(SELECT COUNT(*) FROM parts WHERE type = 'Bit'),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM combos)`,
	).Scan(&s.Beyblades, &s.Blades, &s.Ratchets, &s.Bits, &s.Users, &s.Combos)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}
	return &s, nil
}

// CountAllParts returns the total number of parts. Used by the health check.
func (db *DB) CountAllParts(ctx context.Context) (_ int64, err error) {
	defer observe("select", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	n, err := count(ctx, db.conn, `SELECT COUNT(*) FROM parts`)
	if err != nil {
		return 0, fmt.Errorf("failed to count parts: %w", err)
	}
	return n, nil
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// Default catalog written by ResetCatalog.
const (
	SeedBladeName   = "GolemRock"
	SeedRatchetName = "1-60"
	SeedBitName     = "UN"
)

// SeedStats are the stats of the seeded beyblade.
var SeedStats = BeybladeStats{Attack: 85, Defense: 90, Stamina: 75}

// SeedResult is what ResetCatalog created.
type SeedResult struct {
	Blade    models.Part     `json:"blade"`
	Ratchet  models.Part     `json:"ratchet"`
	Bit      models.Part     `json:"bit"`
	Beyblade models.Beyblade `json:"beyblade"`

	// RemovedPartIDs are the ids of parts that existed before the reset.
	RemovedPartIDs []int64 `json:"-"`
}

// ResetCatalog wipes parts, beyblades, collections, combos and likes and
// writes the default catalog. Users are kept.
func (db *DB) ResetCatalog(ctx context.Context) (_ *SeedResult, err error) {
	defer observe("seed", "catalog", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	result := &SeedResult{}
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		removed, err := partIDs(ctx, tx)
		if err != nil {
			return err
		}
		result.RemovedPartIDs = removed

		for _, table := range []string{"combo_likes", "combos", "user_collections", "beyblades", "parts"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		now := db.now()
		blade, err := insertPart(ctx, tx, SeedBladeName, models.PartBlade, now)
		if err != nil {
			return err
		}
		ratchet, err := insertPart(ctx, tx, SeedRatchetName, models.PartRatchet, now)
		if err != nil {
			return err
		}
		bit, err := insertPart(ctx, tx, SeedBitName, models.PartBit, now)
		if err != nil {
			return err
		}
		b, err := insertBeyblade(ctx, tx, PartSet{BladeID: blade.ID, RatchetID: ratchet.ID, BitID: bit.ID}, SeedStats, now)
		if err != nil {
			return err
		}

		result.Blade, result.Ratchet, result.Bit, result.Beyblade = *blade, *ratchet, *bit, *b
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("removed_parts", len(result.RemovedPartIDs)).
		Int64("beyblade_id", result.Beyblade.ID).
		Msg("Catalog reset to default")
	return result, nil
}

func partIDs(ctx context.Context, q querier) ([]int64, error) {
	rows, err := q.QueryContext(ctx, `SELECT id FROM parts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list part ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan part id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

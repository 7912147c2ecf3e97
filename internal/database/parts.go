// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/beylog/internal/models"
)

// CreatePart inserts a catalog part.
func (db *DB) CreatePart(ctx context.Context, name string, partType models.PartType) (_ *models.Part, err error) {
	defer observe("insert", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return insertPart(ctx, db.conn, name, partType, db.now())
}

func insertPart(ctx context.Context, q querier, name string, partType models.PartType, createdAt time.Time) (*models.Part, error) {
	part := &models.Part{Name: name, Type: partType, CreatedAt: createdAt}
	err := q.QueryRowContext(ctx,
		`INSERT INTO parts (name, type, created_at) VALUES (?, ?, ?) RETURNING id`,
		part.Name, string(part.Type), part.CreatedAt,
	).Scan(&part.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create part %q: %w", name, err)
	}
	return part, nil
}

// GetPart returns one part by id.
func (db *DB) GetPart(ctx context.Context, id int64) (_ *models.Part, err error) {
	defer observe("select", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return getPart(ctx, db.conn, id)
}

func getPart(ctx context.Context, q querier, id int64) (*models.Part, error) {
	var p models.Part
	var partType string
	err := q.QueryRowContext(ctx,
		`SELECT id, name, type, created_at FROM parts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &partType, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("part %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get part %d: %w", id, err)
	}
	p.Type = models.PartType(partType)
	return &p, nil
}

// ListParts returns the parts of one type ordered by name.
func (db *DB) ListParts(ctx context.Context, partType models.PartType) (_ []models.Part, err error) {
	defer observe("select", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, type, created_at FROM parts WHERE type = ? ORDER BY name, id`, string(partType))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", partType.Plural(), err)
	}
	defer closeWithLog(rows, "rows")

	parts := []models.Part{}
	for rows.Next() {
		var p models.Part
		var t string
		if err := rows.Scan(&p.ID, &p.Name, &t, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		p.Type = models.PartType(t)
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}
	return parts, nil
}

// DeletePart removes a part. A part referenced by a beyblade or combo
// returns ErrPartInUse.
func (db *DB) DeletePart(ctx context.Context, id int64) (err error) {
	defer observe("delete", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getPart(ctx, tx, id); err != nil {
			return err
		}
		used, err := count(ctx, tx, `
			SELECT (SELECT COUNT(*) FROM beyblades WHERE blade_id = ? OR ratchet_id = ? OR bit_id = ?)
			     + (SELECT COUNT(*) FROM combos WHERE blade_id = ? OR ratchet_id = ? OR bit_id = ?)`,
			id, id, id, id, id, id)
		if err != nil {
			return fmt.Errorf("failed to check part usage: %w", err)
		}
		if used > 0 {
			return fmt.Errorf("part %d: %w", id, ErrPartInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete part %d: %w", id, err)
		}
		return nil
	})
}

// PartSet names the three parts of an assembly.
type PartSet struct {
	BladeID   int64
	RatchetID int64
	BitID     int64
}

// requireParts checks that each id exists and has the expected type.
func requireParts(ctx context.Context, q querier, set PartSet) error {
	want := []struct {
		id int64
		t  models.PartType
	}{
		{set.BladeID, models.PartBlade},
		{set.RatchetID, models.PartRatchet},
		{set.BitID, models.PartBit},
	}
	for _, w := range want {
		p, err := getPart(ctx, q, w.id)
		if err != nil {
			return err
		}
		if p.Type != w.t {
			return fmt.Errorf("part %d is a %s, want %s: %w", w.id, p.Type, w.t, ErrWrongPartType)
		}
	}
	return nil
}

// CountParts returns the number of parts of each type.
func (db *DB) CountParts(ctx context.Context) (_ map[models.PartType]int64, err error) {
	defer observe("select", "parts", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT type, COUNT(*) FROM parts GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count parts: %w", err)
	}
	defer closeWithLog(rows, "rows")

	counts := make(map[models.PartType]int64, len(models.PartTypes))
	for _, t := range models.PartTypes {
		counts[t] = 0
	}
	for rows.Next() {
		var t string
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("failed to scan part count: %w", err)
		}
		counts[models.PartType(t)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part counts: %w", err)
	}
	return counts, nil
}

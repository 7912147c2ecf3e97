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

// BeybladeStats are the caller-supplied stats. Balance is derived.
type BeybladeStats struct {
	Attack  int
	Defense int
	Stamina int
}

const beybladeViewColumns = `
	b.id, b.blade_id, b.ratchet_id, b.bit_id,
	b.attack, b.defense, b.stamina, b.balance, b.created_at,
	bl.name, r.name, bi.name`

const beybladePartJoins = `
	JOIN parts bl ON bl.id = b.blade_id
	JOIN parts r ON r.id = b.ratchet_id
	JOIN parts bi ON bi.id = b.bit_id`

// beybladeViewSelect joins a beyblade with its three part names.
const beybladeViewSelect = `SELECT ` + beybladeViewColumns + ` FROM beyblades b` + beybladePartJoins

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBeybladeView(row rowScanner, extra ...any) (models.BeybladeView, error) {
	var v models.BeybladeView
	dest := []any{
		&v.ID, &v.BladeID, &v.RatchetID, &v.BitID,
		&v.Attack, &v.Defense, &v.Stamina, &v.Balance, &v.CreatedAt,
		&v.Blade.Name, &v.Ratchet.Name, &v.Bit.Name,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return v, err
	}
	v.Blade.ID, v.Blade.Type = v.BladeID, models.PartBlade
	v.Ratchet.ID, v.Ratchet.Type = v.RatchetID, models.PartRatchet
	v.Bit.ID, v.Bit.Type = v.BitID, models.PartBit
	return v, nil
}

// CreateBeyblade registers an assembly. Missing parts return ErrNotFound and
// parts of the wrong kind return ErrWrongPartType.
func (db *DB) CreateBeyblade(ctx context.Context, parts PartSet, stats BeybladeStats) (_ *models.Beyblade, err error) {
	defer observe("insert", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var b *models.Beyblade
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireParts(ctx, tx, parts); err != nil {
			return err
		}
		var ierr error
		b, ierr = insertBeyblade(ctx, tx, parts, stats, db.now())
		return ierr
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func insertBeyblade(ctx context.Context, q querier, parts PartSet, stats BeybladeStats, createdAt time.Time) (*models.Beyblade, error) {
	b := &models.Beyblade{
		BladeID:   parts.BladeID,
		RatchetID: parts.RatchetID,
		BitID:     parts.BitID,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
		Stamina:   stats.Stamina,
		Balance:   models.Balance(stats.Attack, stats.Defense, stats.Stamina),
		CreatedAt: createdAt,
	}
	err := q.QueryRowContext(ctx, `
		INSERT INTO beyblades (blade_id, ratchet_id, bit_id, attack, defense, stamina, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		b.BladeID, b.RatchetID, b.BitID, b.Attack, b.Defense, b.Stamina, b.Balance, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create beyblade: %w", err)
	}
	return b, nil
}

// GetBeyblade returns one beyblade with part names.
func (db *DB) GetBeyblade(ctx context.Context, id int64) (_ *models.BeybladeView, err error) {
	defer observe("select", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return getBeyblade(ctx, db.conn, id)
}

func getBeyblade(ctx context.Context, q querier, id int64) (*models.BeybladeView, error) {
	v, err := scanBeybladeView(q.QueryRowContext(ctx, beybladeViewSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("beyblade %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beyblade %d: %w", id, err)
	}
	return &v, nil
}

// ListBeyblades returns all beyblades, newest first.
func (db *DB) ListBeyblades(ctx context.Context) (_ []models.BeybladeView, err error) {
	defer observe("select", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, beybladeViewSelect+` ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list beyblades: %w", err)
	}
	defer closeWithLog(rows, "rows")

	views := []models.BeybladeView{}
	for rows.Next() {
		v, err := scanBeybladeView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beyblade: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beyblades: %w", err)
	}
	return views, nil
}

// LatestBeyblade returns the newest beyblade, or ErrNotFound when the
// catalog is empty.
func (db *DB) LatestBeyblade(ctx context.Context) (_ *models.BeybladeView, err error) {
	defer observe("select", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	v, err := scanBeybladeView(db.conn.QueryRowContext(ctx,
		beybladeViewSelect+` ORDER BY b.created_at DESC, b.id DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest beyblade: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest beyblade: %w", err)
	}
	return &v, nil
}

// UpdateBeyblade replaces parts and stats and recomputes balance.
func (db *DB) UpdateBeyblade(ctx context.Context, id int64, parts PartSet, stats BeybladeStats) (_ *models.BeybladeView, err error) {
	defer observe("update", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var v *models.BeybladeView
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getBeyblade(ctx, tx, id); err != nil {
			return err
		}
		if err := requireParts(ctx, tx, parts); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE beyblades
			SET blade_id = ?, ratchet_id = ?, bit_id = ?, attack = ?, defense = ?, stamina = ?, balance = ?
			WHERE id = ?`,
			parts.BladeID, parts.RatchetID, parts.BitID,
			stats.Attack, stats.Defense, stats.Stamina,
			models.Balance(stats.Attack, stats.Defense, stats.Stamina), id)
		if err != nil {
			return fmt.Errorf("failed to update beyblade %d: %w", id, err)
		}
		v, err = getBeyblade(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteBeyblade removes a beyblade and every collection entry holding it.
func (db *DB) DeleteBeyblade(ctx context.Context, id int64) (err error) {
	defer observe("delete", "beyblades", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM beyblades WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete beyblade %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("beyblade %d: %w", id, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_collections WHERE beyblade_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete collection entries of beyblade %d: %w", id, err)
		}
		return nil
	})
}

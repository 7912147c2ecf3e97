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

	"github.com/tomtom215/beylog/internal/models"
)

// AddToCollection adds a beyblade to a user's collection. Unknown beyblades
// return ErrNotFound and repeats return ErrAlreadyInCollection.
func (db *DB) AddToCollection(ctx context.Context, userID, beybladeID int64) (_ *models.CollectionEntry, err error) {
	defer observe("insert", "user_collections", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var entry *models.CollectionEntry
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		view, err := getBeyblade(ctx, tx, beybladeID)
		if err != nil {
			return err
		}
		exists, err := count(ctx, tx,
			`SELECT COUNT(*) FROM user_collections WHERE user_id = ? AND beyblade_id = ?`, userID, beybladeID)
		if err != nil {
			return fmt.Errorf("failed to check collection: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("beyblade %d: %w", beybladeID, ErrAlreadyInCollection)
		}

		entry = &models.CollectionEntry{AddedAt: db.now(), Beyblade: *view}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO user_collections (user_id, beyblade_id, added_at)
			VALUES (?, ?, ?)
			RETURNING id`,
			userID, beybladeID, entry.AddedAt,
		).Scan(&entry.ID)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("beyblade %d: %w", beybladeID, ErrAlreadyInCollection)
			}
			return fmt.Errorf("failed to add to collection: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// IsInCollection reports whether the user holds the beyblade. Unknown
// beyblades return ErrNotFound.
func (db *DB) IsInCollection(ctx context.Context, userID, beybladeID int64) (_ bool, err error) {
	defer observe("select", "user_collections", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	exists, err := count(ctx, db.conn, `SELECT COUNT(*) FROM beyblades WHERE id = ?`, beybladeID)
	if err != nil {
		return false, fmt.Errorf("failed to check beyblade %d: %w", beybladeID, err)
	}
	if exists == 0 {
		return false, fmt.Errorf("beyblade %d: %w", beybladeID, ErrNotFound)
	}

	n, err := count(ctx, db.conn,
		`SELECT COUNT(*) FROM user_collections WHERE user_id = ? AND beyblade_id = ?`, userID, beybladeID)
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return n > 0, nil
}

// RemoveFromCollection removes a beyblade from a user's collection.
func (db *DB) RemoveFromCollection(ctx context.Context, userID, beybladeID int64) (err error) {
	defer observe("delete", "user_collections", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM user_collections WHERE user_id = ? AND beyblade_id = ?`, userID, beybladeID)
	if err != nil {
		return fmt.Errorf("failed to remove from collection: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("beyblade %d in collection: %w", beybladeID, ErrNotFound)
	}
	return nil
}

// ListCollection returns a user's collection, newest first.
func (db *DB) ListCollection(ctx context.Context, userID int64) (_ []models.CollectionEntry, err error) {
	defer observe("select", "user_collections", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT `+beybladeViewColumns+`, uc.id, uc.added_at
		FROM user_collections uc
		JOIN beyblades b ON b.id = uc.beyblade_id`+beybladePartJoins+`
		WHERE uc.user_id = ?
		ORDER BY uc.added_at DESC, uc.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	defer closeWithLog(rows, "rows")

	entries := []models.CollectionEntry{}
	for rows.Next() {
		var e models.CollectionEntry
		view, err := scanBeybladeView(rows, &e.ID, &e.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		e.Beyblade = view
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection: %w", err)
	}
	return entries, nil
}

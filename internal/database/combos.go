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

	"github.com/tomtom215/beylog/internal/metrics"
	"github.com/tomtom215/beylog/internal/models"
)

// comboViewSelect joins a combo with its part names and owner.
const comboViewSelect = `
	SELECT c.id, c.user_id, c.blade_id, c.ratchet_id, c.bit_id, c.likes, c.created_at,
	       bl.name, r.name, bi.name, u.username
	FROM combos c
	JOIN parts bl ON bl.id = c.blade_id
	JOIN parts r ON r.id = c.ratchet_id
	JOIN parts bi ON bi.id = c.bit_id
	LEFT JOIN users u ON u.id = c.user_id`

func scanComboView(row rowScanner) (models.ComboView, error) {
	var v models.ComboView
	var username sql.NullString
	err := row.Scan(
		&v.ID, &v.UserID, &v.BladeID, &v.RatchetID, &v.BitID, &v.Likes, &v.CreatedAt,
		&v.Blade.Name, &v.Ratchet.Name, &v.Bit.Name, &username,
	)
	if err != nil {
		return v, err
	}
	v.Blade.ID, v.Blade.Type = v.BladeID, models.PartBlade
	v.Ratchet.ID, v.Ratchet.Type = v.RatchetID, models.PartRatchet
	v.Bit.ID, v.Bit.Type = v.BitID, models.PartBit
	if username.Valid {
		v.User = &models.UserSummary{ID: v.UserID, Username: username.String}
	}
	return v, nil
}

func queryComboViews(ctx context.Context, q querier, query string, args ...any) ([]models.ComboView, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	views := []models.ComboView{}
	for rows.Next() {
		v, err := scanComboView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan combo: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating combos: %w", err)
	}
	return views, nil
}

// firstComboView returns the first row of query or ErrNotFound.
func firstComboView(ctx context.Context, q querier, what, query string, args ...any) (*models.ComboView, error) {
	v, err := scanComboView(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &v, nil
}

// CreateCombo stores a combo for userID with zero likes.
func (db *DB) CreateCombo(ctx context.Context, userID int64, parts PartSet) (_ *models.ComboView, err error) {
	defer observe("insert", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var v *models.ComboView
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireParts(ctx, tx, parts); err != nil {
			return err
		}
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO combos (user_id, blade_id, ratchet_id, bit_id, likes, created_at)
			VALUES (?, ?, ?, ?, 0, ?)
			RETURNING id`,
			userID, parts.BladeID, parts.RatchetID, parts.BitID, db.now(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create combo: %w", err)
		}
		v, err = firstComboView(ctx, tx, fmt.Sprintf("combo %d", id), comboViewSelect+` WHERE c.id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetCombo returns one combo with part names and owner.
func (db *DB) GetCombo(ctx context.Context, id int64) (_ *models.ComboView, err error) {
	defer observe("select", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return firstComboView(ctx, db.conn, fmt.Sprintf("combo %d", id), comboViewSelect+` WHERE c.id = ?`, id)
}

// ListCombos returns every combo, most liked first.
func (db *DB) ListCombos(ctx context.Context) (_ []models.ComboView, err error) {
	defer observe("select", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	views, err := queryComboViews(ctx, db.conn,
		comboViewSelect+` ORDER BY c.likes DESC, c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list combos: %w", err)
	}
	return views, nil
}

// ListUserCombos returns the combos owned by userID, newest first.
func (db *DB) ListUserCombos(ctx context.Context, userID int64) (_ []models.ComboView, err error) {
	defer observe("select", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	views, err := queryComboViews(ctx, db.conn,
		comboViewSelect+` WHERE c.user_id = ? ORDER BY c.created_at DESC, c.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list combos of user %d: %w", userID, err)
	}
	return views, nil
}

// TopUserCombo returns the most liked combo of userID, or ErrNotFound.
func (db *DB) TopUserCombo(ctx context.Context, userID int64) (_ *models.ComboView, err error) {
	defer observe("select", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return firstComboView(ctx, db.conn, fmt.Sprintf("top combo of user %d", userID),
		comboViewSelect+` WHERE c.user_id = ? ORDER BY c.likes DESC, c.created_at DESC, c.id DESC LIMIT 1`, userID)
}

// TopComboSince returns the most liked combo created at or after since, or
// ErrNotFound.
func (db *DB) TopComboSince(ctx context.Context, since time.Time) (_ *models.ComboView, err error) {
	defer observe("select", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return firstComboView(ctx, db.conn, "top combo",
		comboViewSelect+` WHERE c.created_at >= ? ORDER BY c.likes DESC, c.created_at DESC, c.id DESC LIMIT 1`,
		since.UTC())
}

// UpdateComboParts replaces the parts of a combo. Likes are kept.
func (db *DB) UpdateComboParts(ctx context.Context, id int64, parts PartSet) (_ *models.ComboView, err error) {
	defer observe("update", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var v *models.ComboView
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		what := fmt.Sprintf("combo %d", id)
		if _, err := firstComboView(ctx, tx, what, comboViewSelect+` WHERE c.id = ?`, id); err != nil {
			return err
		}
		if err := requireParts(ctx, tx, parts); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE combos SET blade_id = ?, ratchet_id = ?, bit_id = ? WHERE id = ?`,
			parts.BladeID, parts.RatchetID, parts.BitID, id)
		if err != nil {
			return fmt.Errorf("failed to update combo %d: %w", id, err)
		}
		v, err = firstComboView(ctx, tx, what, comboViewSelect+` WHERE c.id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteCombo removes a combo and its likes.
func (db *DB) DeleteCombo(ctx context.Context, id int64) (err error) {
	defer observe("delete", "combos", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM combo_likes WHERE combo_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete likes of combo %d: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM combos WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete combo %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("combo %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ToggleLike likes the combo for userID, or removes the like if present.
// The like row and the counter change in one transaction. It returns the
// updated combo and whether userID now likes it.
func (db *DB) ToggleLike(ctx context.Context, comboID, userID int64) (_ *models.ComboView, liked bool, err error) {
	defer observe("update", "combo_likes", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var v *models.ComboView
	what := fmt.Sprintf("combo %d", comboID)
	err = db.withRetryTx(ctx, "toggle_like", func(tx *sql.Tx) error {
		if _, err := firstComboView(ctx, tx, what, comboViewSelect+` WHERE c.id = ?`, comboID); err != nil {
			return err
		}
		existing, err := count(ctx, tx,
			`SELECT COUNT(*) FROM combo_likes WHERE combo_id = ? AND user_id = ?`, comboID, userID)
		if err != nil {
			return fmt.Errorf("failed to check like: %w", err)
		}

		if existing > 0 {
			liked = false
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM combo_likes WHERE combo_id = ? AND user_id = ?`, comboID, userID); err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE combos SET likes = GREATEST(likes - 1, 0) WHERE id = ?`, comboID); err != nil {
				return fmt.Errorf("failed to decrement likes: %w", err)
			}
		} else {
			liked = true
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO combo_likes (combo_id, user_id, created_at) VALUES (?, ?, ?)`,
				comboID, userID, db.now()); err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE combos SET likes = likes + 1 WHERE id = ?`, comboID); err != nil {
				return fmt.Errorf("failed to increment likes: %w", err)
			}
		}

		v, err = firstComboView(ctx, tx, what, comboViewSelect+` WHERE c.id = ?`, comboID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	metrics.RecordLikeToggle(liked)
	return v, liked, nil
}

// LikedComboIDs returns the set of combos userID has liked.
func (db *DB) LikedComboIDs(ctx context.Context, userID int64) (_ map[int64]bool, err error) {
	defer observe("select", "combo_likes", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT combo_id FROM combo_likes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes of user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "rows")

	liked := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return liked, nil
}

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
	"strings"
	"time"

	"github.com/tomtom215/beylog/internal/models"
)

const userColumns = `id, email, username, password_hash, is_admin, created_at`

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts an account. Returns ErrDuplicate if the email is taken.
func (db *DB) CreateUser(ctx context.Context, email, username, passwordHash string, isAdmin bool) (_ *models.User, err error) {
	defer observe("insert", "users", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if username == "" {
		username = models.DefaultUsername
	}
	user := &models.User{
		Email:        NormalizeEmail(email),
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    db.now(),
	}

	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		user.Email, user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail looks up an account by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (_ *models.User, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, NormalizeEmail(email))
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", NormalizeEmail(email), err)
	}
	return user, nil
}

// GetUserByID looks up an account by id.
func (db *DB) GetUserByID(ctx context.Context, id int64) (_ *models.User, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

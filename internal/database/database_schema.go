// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds schema creation at startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates sequences, tables and indexes. Every statement is
// idempotent so it runs on every start.
func (db *DB) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS parts_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS beyblades_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS user_collections_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS combos_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			email VARCHAR NOT NULL UNIQUE,
			username VARCHAR NOT NULL,
			password_hash VARCHAR NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS parts (
			id BIGINT PRIMARY KEY DEFAULT nextval('parts_id_seq'),
			name VARCHAR NOT NULL,
			type VARCHAR NOT NULL CHECK (type IN ('Blade', 'Ratchet', 'Bit')),
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS beyblades (
			id BIGINT PRIMARY KEY DEFAULT nextval('beyblades_id_seq'),
			blade_id BIGINT NOT NULL,
			ratchet_id BIGINT NOT NULL,
			bit_id BIGINT NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			stamina INTEGER NOT NULL,
			balance INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_collections (
			id BIGINT PRIMARY KEY DEFAULT nextval('user_collections_id_seq'),
			user_id BIGINT NOT NULL,
			beyblade_id BIGINT NOT NULL,
			added_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, beyblade_id)
		)`,

		`CREATE TABLE IF NOT EXISTS combos (
			id BIGINT PRIMARY KEY DEFAULT nextval('combos_id_seq'),
			user_id BIGINT NOT NULL,
			blade_id BIGINT NOT NULL,
			ratchet_id BIGINT NOT NULL,
			bit_id BIGINT NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS combo_likes (
			combo_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (combo_id, user_id)
		)`,

		// Indexes only on columns that are never updated.
		`CREATE INDEX IF NOT EXISTS idx_parts_type ON parts(type)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_user ON user_collections(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_combos_user ON combos(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_combos_created ON combos(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_combo_likes_user ON combo_likes(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

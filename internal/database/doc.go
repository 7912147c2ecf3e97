// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package database provides the DuckDB-backed catalog store for BeyLog.

It holds users, parts, beyblades, personal collections, combos and combo
likes. Part images are not stored here; they live in the imagestore package
keyed by part id.

# Schema

	users             id, email (unique), username, password_hash, is_admin, created_at
	parts             id, name, type (Blade|Ratchet|Bit), created_at
	beyblades         id, blade_id, ratchet_id, bit_id, attack, defense, stamina, balance, created_at
	user_collections  id, user_id, beyblade_id, added_at, UNIQUE(user_id, beyblade_id)
	combos            id, user_id, blade_id, ratchet_id, bit_id, likes, created_at
	combo_likes       combo_id, user_id, created_at, PRIMARY KEY(combo_id, user_id)

Ids come from sequences. Referential integrity is enforced in Go: parts are
checked for existence and type before a beyblade or combo references them,
and a part still referenced cannot be deleted (ErrPartInUse).

# Errors

Lookups that find nothing return ErrNotFound wrapped with context. Callers
compare with errors.Is:

	view, err := db.GetBeyblade(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		// 404
	}

# Concurrency

DuckDB uses optimistic concurrency. Write transactions that can race on the
same rows (like toggles) are retried on a transaction conflict through
withRetryTx.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := db.CreateUser(ctx, email, "Blader", hash, false)
*/
package database

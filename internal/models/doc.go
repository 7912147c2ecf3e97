// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package models defines data structures for the BeyLog application.

Model Categories:

1. Database Models:
  - User: account with bcrypt password hash and admin flag
  - Part: a Blade, Ratchet or Bit in the catalog
  - Beyblade: a Blade+Ratchet+Bit assembly with stats
  - ComboView: a user-built assembly that other users can like, with its parts

2. API Views:
  - PartView, BeybladeView, ComboSummary: response shapes with
    part images encoded as base64

3. Requests:
  - RegisterRequest, LoginRequest, CreatePartRequest, ... with validator tags

JSON field names are camelCase to stay compatible with existing clients.
*/
package models

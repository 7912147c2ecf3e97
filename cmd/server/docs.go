// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

// @title BeyLog API
// @version 1.0
// @description Beyblade parts catalog, collections and community combos.
// @description
// @description ## Authentication
// @description
// @description Log in with `/api/auth/login`. The session is carried in the
// @description HTTP-only `token` cookie; an `Authorization: Bearer` header is
// @description accepted as a fallback.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Part not found", "request_id": "..."},
// @description   "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/beylog/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
//
// @tag.name Auth
// @tag.description Registration, login and session
// @tag.name Parts
// @tag.description Blades, ratchets and bits with their images
// @tag.name Beyblades
// @tag.description Catalog beyblades and personal collections
// @tag.name Combos
// @tag.description Community combos and likes
// @tag.name Admin
// @tag.description Administrator operations
// @tag.name Core
// @tag.description Health
package main

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"time"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/config"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/logging"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by resource:
//   - handlers_auth.go: register, login, logout, me, admin register
//   - handlers_health.go: health and admin stats
//   - handlers_beyblades.go: beyblade registry
//   - handlers_collection.go: per-user collections
//   - handlers_combos.go: combos, feeds and likes
//   - handlers_parts.go: part catalog and images
//   - handlers_seed.go: catalog reset
type Handler struct {
	db       *database.DB
	images   *imagestore.Store
	codec    *auth.TokenCodec
	guard    *auth.Guard
	throttle *auth.LoginThrottle
	security *logging.SecurityLogger
	config   *config.Config

	startTime time.Time
	version   string
	now       func() time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(db, images, codec, guard, cfg)
//	router := api.NewRouter(handler, gate, guard, api.NewChiMiddleware(nil))
//	http.ListenAndServe(":3000", router.SetupChi())
func NewHandler(db *database.DB, images *imagestore.Store, codec *auth.TokenCodec, guard *auth.Guard, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		images:    images,
		codec:     codec,
		guard:     guard,
		throttle:  auth.NewLoginThrottle(cfg.Security.LoginMaxAttempts, cfg.Security.LoginAttemptWindow),
		security:  logging.NewSecurityLogger(),
		config:    cfg,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// SetVersion sets the build version reported by the health endpoint.
func (h *Handler) SetVersion(version string) {
	h.version = version
}

// secureCookies reports whether session cookies carry the Secure flag.
func (h *Handler) secureCookies() bool {
	return h.config.IsProduction()
}

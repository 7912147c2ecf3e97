// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package auth provides session authentication and request authorization.

Key Components:

  - TokenCodec: issues and verifies HS256 session tokens (7 day lifetime)
  - Gate: coarse per-request filter deciding admit / redirect to login /
    redirect to dashboard from the path and the session cookie alone
  - Guard: precise per-operation check returning 401, 403 with an
    operation-specific message, or the verified Principal
  - LoginThrottle: per-account failed-login limiter
  - Session cookie helpers: SetSessionCookie, ClearSessionCookie, SessionToken

Error Taxonomy:

All components report failures with the same sentinels:

	ErrMissingCredential  no session token            -> 401
	ErrInvalidSignature   tampered/malformed token    -> 401
	ErrExpired            authentic but expired token -> 401
	ErrForbidden          role lacks capability       -> 403

A *ForbiddenError carries the denial message and unwraps to ErrForbidden.

Usage:

	codec, err := auth.NewTokenCodec(cfg.Security.JWTSecret, cfg.Security.SessionTimeout)
	if err != nil {
	    return err
	}
	gate := auth.NewGate(auth.DefaultGatePolicy(rules), codec)
	guard := auth.NewGuard(codec, enforcer)

	r.Use(gate.Middleware)
	r.With(guard.Require(authz.CreatePart)).Post("/api/parts", h.CreatePart)

There is no fallback signing secret. Configuration refuses to load without
JWT_SECRET outside development.
*/
package auth

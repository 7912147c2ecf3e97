// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"errors"
	"net/http"
)

// Authentication and authorization failures. Every auth component returns
// one of these (possibly wrapped); callers compare with errors.Is.
var (
	// ErrMissingCredential means the request carried no session token.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidSignature covers tampered, malformed or foreign-key tokens.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired means the token was authentic but past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrForbidden means the principal lacks the role for an operation.
	ErrForbidden = errors.New("forbidden")
)

// ForbiddenError carries the operation-specific denial message.
type ForbiddenError struct {
	Capability string
	Message    string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return ErrForbidden.Error()
	}
	return e.Message
}

// Unwrap makes errors.Is(err, ErrForbidden) hold.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// IsUnauthenticated reports whether err means "no valid principal".
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrExpired)
}

// StatusFor maps an auth error to its HTTP status code. Unknown errors map
// to 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsUnauthenticated(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// reasonFor returns a short label for metrics and security logs.
func reasonFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

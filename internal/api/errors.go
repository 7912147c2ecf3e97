// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/imagestore"
)

// WriteAuthError renders a Route Guard failure in the response envelope.
// It is installed with auth.WithDenialWriter.
func WriteAuthError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var forbidden *auth.ForbiddenError
	switch {
	case errors.As(err, &forbidden):
		rw.Forbidden(forbidden.Message)
	case errors.Is(err, auth.ErrForbidden):
		rw.Forbidden("Access denied")
	case auth.IsUnauthenticated(err):
		rw.Unauthorized("Not authenticated")
	default:
		rw.InternalError("Authorization check failed")
	}
}

// respondDataError maps catalog errors onto response codes. what names the
// entity for the not-found message ("Beyblade", "Combo").
func respondDataError(rw *ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(what + " not found")
	case errors.Is(err, database.ErrDuplicate):
		rw.BadRequest("Email already registered")
	case errors.Is(err, database.ErrPartInUse):
		rw.BadRequest("Part is used by beyblades or combos")
	case errors.Is(err, database.ErrWrongPartType):
		rw.BadRequest("Part has the wrong type for this slot")
	case errors.Is(err, database.ErrAlreadyInCollection):
		rw.BadRequest("Beyblade is already in your collection")
	default:
		rw.DatabaseError(err)
	}
}

// respondImageError maps image store errors onto response codes.
func respondImageError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, imagestore.ErrNotFound):
		rw.NotFound("Image not found")
	case errors.Is(err, imagestore.ErrInvalidImage), errors.Is(err, imagestore.ErrEmptyImage):
		rw.BadRequest("Image must be base64 encoded")
	case errors.Is(err, imagestore.ErrTooLarge):
		rw.BadRequest("Image is too large")
	default:
		rw.ImageError(err)
	}
}

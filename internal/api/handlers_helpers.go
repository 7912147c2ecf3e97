// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/validation"
)

// maxBodyBytes bounds request bodies. Images arrive base64-encoded inline.
const maxBodyBytes = 8 << 20

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(rw.w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		rw.BadRequest("Invalid request body")
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		rw.ValidationError(verr.Message(), verr.Fields)
		return false
	}
	return true
}

// pathID parses the {name} URL parameter as a positive id. On failure it
// writes a 400 and returns false.
func pathID(rw *ResponseWriter, r *http.Request, name, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		rw.BadRequest("Invalid " + what + " id")
		return 0, false
	}
	return id, true
}

// requirePrincipal returns the principal attached by the Route Guard.
// Handlers mounted behind Guard.Authenticated always have one; a missing
// principal means a routing mistake and is answered with 401.
func requirePrincipal(rw *ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Not authenticated")
	}
	return p, ok
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

// Package validation validates request DTOs with go-playground/validator v10.
//
// A single validator instance is built once and shared. Field names in
// messages are the JSON names of the request body, so a RegisterRequest with
// a short password yields "password must be at least 6 characters".
//
// The custom "parttype" tag accepts Blade, Ratchet or Bit in any case.
//
//	var req models.BeybladeRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, verr.Message(), verr)
//		return
//	}
package validation

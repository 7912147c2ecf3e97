// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package models

// RegisterRequest creates a regular account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"omitempty,max=50"`
}

// AdminRegisterRequest lets an administrator create any account.
type AdminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"omitempty,max=50"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginRequest is a password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreatePartRequest adds a part. Image is base64, optionally as a data URL.
type CreatePartRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Type  string `json:"type" validate:"required,parttype"`
	Image string `json:"image" validate:"omitempty"`
}

// PartImageRequest replaces the image of a part.
type PartImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// BeybladeRequest creates or updates a beyblade. Balance is derived.
type BeybladeRequest struct {
	BladeID   int64 `json:"bladeId" validate:"required,gt=0"`
	RatchetID int64 `json:"ratchetId" validate:"required,gt=0"`
	BitID     int64 `json:"bitId" validate:"required,gt=0"`
	Attack    int   `json:"attack" validate:"required,min=1,max=100"`
	Defense   int   `json:"defense" validate:"required,min=1,max=100"`
	Stamina   int   `json:"stamina" validate:"required,min=1,max=100"`
}

// ComboRequest creates or updates a combo.
type ComboRequest struct {
	BladeID   int64 `json:"bladeId" validate:"required,gt=0"`
	RatchetID int64 `json:"ratchetId" validate:"required,gt=0"`
	BitID     int64 `json:"bitId" validate:"required,gt=0"`
}

// CollectionAddRequest adds a beyblade to the caller's collection.
type CollectionAddRequest struct {
	BeybladeID int64 `json:"beybladeId" validate:"required,gt=0"`
}

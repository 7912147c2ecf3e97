// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/models"
)

var testJPEG = []byte("\xff\xd8\xff\xe0\x00\x10JFIF-fake-image")

func TestCreatePart_WithImage(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	_, userToken := ts.createUser("blader@example.com", false)

	var part models.PartView
	decode(t, ts.do(http.MethodPost, "/api/parts", models.CreatePartRequest{
		Name:  "GolemRock",
		Type:  "blade",
		Image: "data:image/jpeg;base64," + imagestore.EncodeBase64(testJPEG),
	}, adminToken), http.StatusCreated, &part)

	if part.Type != models.PartBlade {
		t.Errorf("type = %q, want normalized Blade", part.Type)
	}
	if len(part.Images) != 1 || part.Images[0].Image != imagestore.EncodeBase64(testJPEG) {
		t.Errorf("images = %+v", part.Images)
	}

	// Raw bytes come back as image/jpeg.
	rec := ts.do(http.MethodGet, "/api/parts/"+itoa(part.ID)+"/image", nil, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("image status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), testJPEG) {
		t.Error("image bytes differ")
	}

	// Typed lookup returns base64; a wrong type is not found.
	var img ImageResponse
	decode(t, ts.do(http.MethodGet, "/api/blades/"+itoa(part.ID)+"/image", nil, userToken), http.StatusOK, &img)
	if img.Image != imagestore.EncodeBase64(testJPEG) {
		t.Errorf("typed image = %q", img.Image)
	}
	expectError(t, ts.do(http.MethodGet, "/api/bits/"+itoa(part.ID)+"/image", nil, userToken), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, ts.do(http.MethodGet, "/api/blades/abc/image", nil, userToken), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestCreatePart_Invalid(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)

	tests := []struct {
		name     string
		req      models.CreatePartRequest
		wantCode string
	}{
		{"unknown type", models.CreatePartRequest{Name: "X", Type: "Launcher"}, ErrCodeValidationFailed},
		{"missing name", models.CreatePartRequest{Type: "Bit"}, ErrCodeValidationFailed},
		{"bad image", models.CreatePartRequest{Name: "X", Type: "Bit", Image: "***not base64***"}, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, ts.do(http.MethodPost, "/api/parts", tt.req, adminToken), http.StatusBadRequest, tt.wantCode)
		})
	}

	parts, err := ts.db.ListParts(context.Background(), models.PartBit)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 0 {
		t.Errorf("rejected requests created %d parts", len(parts))
	}
}

func TestPartCatalogAndLists(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser("blader@example.com", false)
	set := ts.createParts("1")
	ts.createParts("2")
	if err := ts.images.Put(context.Background(), set.BladeID, testJPEG); err != nil {
		t.Fatal(err)
	}

	var catalog models.PartCatalog
	decode(t, ts.do(http.MethodGet, "/api/parts", nil, token), http.StatusOK, &catalog)
	if len(catalog.Blades) != 2 || len(catalog.Ratchets) != 2 || len(catalog.Bits) != 2 {
		t.Fatalf("catalog sizes = %d/%d/%d", len(catalog.Blades), len(catalog.Ratchets), len(catalog.Bits))
	}
	if catalog.Blades[0].ID != set.BladeID || catalog.Blades[0].FirstImage() == "" {
		t.Errorf("first blade = %+v", catalog.Blades[0])
	}
	if catalog.Blades[1].Images == nil || len(catalog.Blades[1].Images) != 0 {
		t.Errorf("image-less part must have empty images, got %#v", catalog.Blades[1].Images)
	}

	var refs []models.PartRef
	decode(t, ts.do(http.MethodGet, "/api/parts/bits", nil, token), http.StatusOK, &refs)
	if len(refs) != 2 || refs[0].Name != "Bit1" {
		t.Errorf("bit refs = %+v", refs)
	}
	decode(t, ts.do(http.MethodGet, "/api/parts/ratchets", nil, token), http.StatusOK, &refs)
	if len(refs) != 2 || refs[1].Name != "Ratchet2" {
		t.Errorf("ratchet refs = %+v", refs)
	}

	var ratchets []models.PartView
	decode(t, ts.do(http.MethodGet, "/api/ratchets", nil, token), http.StatusOK, &ratchets)
	if len(ratchets) != 2 || ratchets[0].Type != models.PartRatchet {
		t.Errorf("ratchets = %+v", ratchets)
	}
}

func TestUploadPartImage(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	set := ts.createParts("1")

	var resp ImageUploadResponse
	decode(t, ts.do(http.MethodPost, "/api/parts/"+itoa(set.BitID)+"/image",
		models.PartImageRequest{Image: imagestore.EncodeBase64(testJPEG)}, adminToken), http.StatusOK, &resp)
	if resp.Image == nil || resp.Image.PartID != set.BitID || resp.Image.Size != len(testJPEG) {
		t.Errorf("upload meta = %+v", resp.Image)
	}

	got, err := ts.images.Get(context.Background(), set.BitID)
	if err != nil || !bytes.Equal(got, testJPEG) {
		t.Errorf("stored image = %q, %v", got, err)
	}

	expectError(t, ts.do(http.MethodPost, "/api/parts/9999/image",
		models.PartImageRequest{Image: imagestore.EncodeBase64(testJPEG)}, adminToken), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, ts.do(http.MethodPost, "/api/parts/"+itoa(set.BitID)+"/image",
		map[string]string{}, adminToken), http.StatusBadRequest, ErrCodeValidationFailed)
}

func TestDeletePart(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	set := ts.createParts("1")
	ctx := context.Background()

	if err := ts.images.Put(ctx, set.RatchetID, testJPEG); err != nil {
		t.Fatal(err)
	}
	decode(t, ts.do(http.MethodPost, "/api/beyblades", models.BeybladeRequest{
		BladeID: set.BladeID, RatchetID: set.RatchetID, BitID: set.BitID,
		Attack: 50, Defense: 50, Stamina: 50,
	}, adminToken), http.StatusCreated, nil)

	expectError(t, ts.do(http.MethodDelete, "/api/parts/"+itoa(set.RatchetID), nil, adminToken), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, ts.do(http.MethodDelete, "/api/parts/9999", nil, adminToken), http.StatusNotFound, ErrCodeNotFound)

	unused, err := ts.db.CreatePart(ctx, "Spare", models.PartRatchet)
	if err != nil {
		t.Fatal(err)
	}
	if err := ts.images.Put(ctx, unused.ID, testJPEG); err != nil {
		t.Fatal(err)
	}
	decode(t, ts.do(http.MethodDelete, "/api/parts/"+itoa(unused.ID), nil, adminToken), http.StatusOK, nil)

	if _, err := ts.images.Get(ctx, unused.ID); err == nil {
		t.Error("deleting a part must delete its image")
	}
	if _, err := ts.images.Get(ctx, set.RatchetID); err != nil {
		t.Errorf("image of the part in use must survive: %v", err)
	}
}

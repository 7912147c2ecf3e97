// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/models"
)

func beybladeRequest(set database.PartSet, attack, defense, stamina int) models.BeybladeRequest {
	return models.BeybladeRequest{
		BladeID: set.BladeID, RatchetID: set.RatchetID, BitID: set.BitID,
		Attack: attack, Defense: defense, Stamina: stamina,
	}
}

func TestBeyblades_CRUD(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	_, userToken := ts.createUser("blader@example.com", false)
	set := ts.createParts("1")
	if err := ts.images.Put(context.Background(), set.BladeID, testJPEG); err != nil {
		t.Fatal(err)
	}

	var created models.BeybladeView
	decode(t, ts.do(http.MethodPost, "/api/beyblades", beybladeRequest(set, 85, 90, 75), adminToken), http.StatusCreated, &created)
	if created.Balance != 83 {
		t.Errorf("balance = %d, want 83", created.Balance)
	}
	if created.Name() != "Blade1 Ratchet1 Bit1" {
		t.Errorf("name = %q", created.Name())
	}
	if created.Blade.FirstImage() == "" {
		t.Error("blade image missing")
	}

	var one models.BeybladeView
	decode(t, ts.do(http.MethodGet, "/api/beyblades/"+itoa(created.ID), nil, userToken), http.StatusOK, &one)
	if one.ID != created.ID || one.Attack != 85 {
		t.Errorf("get = %+v", one.Beyblade)
	}

	var list []models.BeybladeView
	decode(t, ts.do(http.MethodGet, "/api/beyblades/list", nil, userToken), http.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("list len = %d", len(list))
	}
	decode(t, ts.do(http.MethodGet, "/api/beyblades", nil, adminToken), http.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("admin list len = %d", len(list))
	}

	var updated models.BeybladeView
	decode(t, ts.do(http.MethodPut, "/api/beyblades/"+itoa(created.ID), beybladeRequest(set, 10, 10, 11), adminToken), http.StatusOK, &updated)
	if updated.Balance != 10 || updated.Stamina != 11 {
		t.Errorf("updated = %+v", updated.Beyblade)
	}

	decode(t, ts.do(http.MethodDelete, "/api/beyblades/"+itoa(created.ID), nil, adminToken), http.StatusOK, nil)
	expectError(t, ts.do(http.MethodGet, "/api/beyblades/"+itoa(created.ID), nil, userToken), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, ts.do(http.MethodDelete, "/api/beyblades/"+itoa(created.ID), nil, adminToken), http.StatusNotFound, ErrCodeNotFound)
}

func TestCreateBeyblade_Invalid(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	set := ts.createParts("1")

	swapped := set
	swapped.BladeID, swapped.BitID = set.BitID, set.BladeID
	missing := set
	missing.RatchetID = 9999

	tests := []struct {
		name       string
		req        models.BeybladeRequest
		wantStatus int
		wantCode   string
	}{
		{"stat above 100", beybladeRequest(set, 101, 50, 50), http.StatusBadRequest, ErrCodeValidationFailed},
		{"stat zero", beybladeRequest(set, 50, 0, 50), http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing part id", beybladeRequest(database.PartSet{BladeID: set.BladeID}, 50, 50, 50), http.StatusBadRequest, ErrCodeValidationFailed},
		{"unknown part", beybladeRequest(missing, 50, 50, 50), http.StatusNotFound, ErrCodeNotFound},
		{"wrong part type", beybladeRequest(swapped, 50, 50, 50), http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, ts.do(http.MethodPost, "/api/beyblades", tt.req, adminToken), tt.wantStatus, tt.wantCode)
		})
	}
}

func TestLastBeyblade(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	_, token := ts.createUser("blader@example.com", false)

	var empty models.BeybladeSummary
	decode(t, ts.do(http.MethodGet, "/api/beyblades/last", nil, token), http.StatusOK, &empty)
	if empty.ID != nil || empty.Type != "-" || !strings.HasPrefix(empty.Image, "/placeholder.svg") {
		t.Errorf("placeholder = %+v", empty)
	}

	set := ts.createParts("1")
	if err := ts.images.Put(context.Background(), set.BladeID, testJPEG); err != nil {
		t.Fatal(err)
	}
	decode(t, ts.do(http.MethodPost, "/api/beyblades", beybladeRequest(set, 85, 90, 75), adminToken), http.StatusCreated, nil)

	var last models.BeybladeSummary
	decode(t, ts.do(http.MethodGet, "/api/beyblades/last", nil, token), http.StatusOK, &last)
	if last.ID == nil || last.Name != "Blade1 Ratchet1 Bit1" || last.Type != "Blade1" {
		t.Errorf("summary = %+v", last)
	}
	if !strings.HasPrefix(last.Image, "data:image/jpeg;base64,") {
		t.Errorf("image = %q", last.Image)
	}
	if last.Stats.Balance != 83 || last.Stats.Defense != 90 {
		t.Errorf("stats = %+v", last.Stats)
	}
}

func TestCollection(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	_, token := ts.createUser("blader@example.com", false)
	_, otherToken := ts.createUser("other@example.com", false)
	set := ts.createParts("1")

	var bey models.BeybladeView
	decode(t, ts.do(http.MethodPost, "/api/beyblades", beybladeRequest(set, 50, 50, 50), adminToken), http.StatusCreated, &bey)
	id := itoa(bey.ID)

	var check CollectionCheckResponse
	decode(t, ts.do(http.MethodGet, "/api/beyblades/collection/check/"+id, nil, token), http.StatusOK, &check)
	if check.IsInCollection {
		t.Error("new beyblade must not be in collection")
	}

	var entry models.CollectionEntry
	decode(t, ts.do(http.MethodPost, "/api/beyblades/collection/add",
		models.CollectionAddRequest{BeybladeID: bey.ID}, token), http.StatusCreated, &entry)
	if entry.Beyblade.ID != bey.ID {
		t.Errorf("entry = %+v", entry)
	}

	expectError(t, ts.do(http.MethodPost, "/api/beyblades/collection/add",
		models.CollectionAddRequest{BeybladeID: bey.ID}, token), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, ts.do(http.MethodPost, "/api/beyblades/collection/add",
		models.CollectionAddRequest{BeybladeID: 9999}, token), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, ts.do(http.MethodPost, "/api/beyblades/collection/add",
		map[string]int{}, token), http.StatusBadRequest, ErrCodeValidationFailed)

	decode(t, ts.do(http.MethodGet, "/api/beyblades/collection/check/"+id, nil, token), http.StatusOK, &check)
	if !check.IsInCollection {
		t.Error("beyblade must be in collection after add")
	}
	expectError(t, ts.do(http.MethodGet, "/api/beyblades/collection/check/xyz", nil, token), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, ts.do(http.MethodGet, "/api/beyblades/collection/check/9999", nil, token), http.StatusNotFound, ErrCodeNotFound)

	var entries []models.CollectionEntry
	decode(t, ts.do(http.MethodGet, "/api/beyblades/collection", nil, token), http.StatusOK, &entries)
	if len(entries) != 1 {
		t.Fatalf("collection len = %d", len(entries))
	}
	decode(t, ts.do(http.MethodGet, "/api/colecao", nil, token), http.StatusOK, &entries)
	if len(entries) != 1 {
		t.Fatalf("legacy alias len = %d", len(entries))
	}

	// Collections are per user.
	decode(t, ts.do(http.MethodGet, "/api/beyblades/collection", nil, otherToken), http.StatusOK, &entries)
	if len(entries) != 0 {
		t.Errorf("other user's collection len = %d", len(entries))
	}

	decode(t, ts.do(http.MethodDelete, "/api/beyblades/collection/"+id, nil, token), http.StatusOK, nil)
	expectError(t, ts.do(http.MethodDelete, "/api/beyblades/collection/"+id, nil, token), http.StatusNotFound, ErrCodeNotFound)
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/tomtom215/beylog/internal/models"
)

func TestSeedCatalog(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	old := ts.createParts("old")
	ctx := context.Background()
	if err := ts.images.Put(ctx, old.BladeID, testJPEG); err != nil {
		t.Fatal(err)
	}

	decode(t, ts.do(http.MethodPost, "/api/seed", nil, adminToken), http.StatusOK, nil)

	var beys []models.BeybladeView
	decode(t, ts.do(http.MethodGet, "/api/beyblades/list", nil, adminToken), http.StatusOK, &beys)
	if len(beys) != 1 {
		t.Fatalf("beyblades after seed = %d", len(beys))
	}
	if beys[0].Name() != "GolemRock 1-60 UN" || beys[0].Balance != 83 {
		t.Errorf("seeded = %q balance %d", beys[0].Name(), beys[0].Balance)
	}

	if _, err := ts.images.Get(ctx, old.BladeID); err == nil {
		t.Error("images of removed parts must be deleted")
	}

	// Users survive a reset.
	if u, err := ts.db.GetUserByEmail(ctx, "admin@example.com"); err != nil || u == nil {
		t.Errorf("admin lost after seed: %v", err)
	}
}

func TestSeedCatalog_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Database.SeedEnabled = false
	ts := newTestServerWithConfig(t, cfg)
	_, adminToken := ts.createUser("admin@example.com", true)

	expectError(t, ts.do(http.MethodPost, "/api/seed", nil, adminToken), http.StatusForbidden, ErrCodeSeedDisabled)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	ts.createParts("1")

	var status models.HealthStatus
	decode(t, ts.do(http.MethodGet, "/api/health", nil, ""), http.StatusOK, &status)
	if status.Status != "ok" || status.Database != "connected" || status.Images != "connected" {
		t.Errorf("status = %+v", status)
	}
	if status.PartCount != 3 || status.Version != "test" {
		t.Errorf("partCount = %d, version = %q", status.PartCount, status.Version)
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.db.Close(); err != nil {
		t.Fatal(err)
	}

	apiErr := expectError(t, ts.do(http.MethodGet, "/api/health", nil, ""), http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
	if apiErr.Message != "Database unavailable" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser("admin@example.com", true)
	_, token := ts.createUser("blader@example.com", false)
	set := ts.createParts("1")
	decode(t, ts.do(http.MethodPost, "/api/combos", comboRequest(set), token), http.StatusCreated, nil)
	decode(t, ts.do(http.MethodPost, "/api/beyblades", beybladeRequest(set, 50, 50, 50), adminToken), http.StatusCreated, nil)

	var stats models.CatalogStats
	decode(t, ts.do(http.MethodGet, "/api/admin/stats", nil, adminToken), http.StatusOK, &stats)
	want := models.CatalogStats{Beyblades: 1, Blades: 1, Ratchets: 1, Bits: 1, Users: 2, Combos: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

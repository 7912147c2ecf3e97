// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/beylog/internal/models"
)

func TestCreateAndListParts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, p := range []struct {
		name string
		t    models.PartType
	}{
		{"WizardRod", models.PartBlade},
		{"DranSword", models.PartBlade},
		{"3-60", models.PartRatchet},
		{"F", models.PartBit},
	} {
		if _, err := db.CreatePart(ctx, p.name, p.t); err != nil {
			t.Fatalf("CreatePart(%s): %v", p.name, err)
		}
	}

	blades, err := db.ListParts(ctx, models.PartBlade)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if len(blades) != 2 || blades[0].Name != "DranSword" || blades[1].Name != "WizardRod" {
		t.Errorf("blades = %+v, want sorted by name", blades)
	}
	for _, b := range blades {
		if b.Type != models.PartBlade {
			t.Errorf("type = %q", b.Type)
		}
	}

	counts, err := db.CountParts(ctx)
	if err != nil {
		t.Fatalf("CountParts: %v", err)
	}
	want := map[models.PartType]int64{models.PartBlade: 2, models.PartRatchet: 1, models.PartBit: 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%s] = %d, want %d", k, counts[k], v)
		}
	}

	total, err := db.CountAllParts(ctx)
	if err != nil {
		t.Fatalf("CountAllParts: %v", err)
	}
	if total != 4 {
		t.Errorf("CountAllParts = %d, want 4", total)
	}
}

func TestListParts_EmptyIsNotNil(t *testing.T) {
	db := setupTestDB(t)

	bits, err := db.ListParts(context.Background(), models.PartBit)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if bits == nil || len(bits) != 0 {
		t.Errorf("ListParts = %#v, want empty slice", bits)
	}
}

func TestDeletePart(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	used := createTestParts(t, db, "A")
	if _, err := db.CreateBeyblade(ctx, used, BeybladeStats{Attack: 50, Defense: 50, Stamina: 50}); err != nil {
		t.Fatalf("CreateBeyblade: %v", err)
	}
	comboOnly, err := db.CreatePart(ctx, "ComboOnly", models.PartBit)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	user := createTestUser(t, db, 1)
	if _, err := db.CreateCombo(ctx, user.ID, PartSet{BladeID: used.BladeID, RatchetID: used.RatchetID, BitID: comboOnly.ID}); err != nil {
		t.Fatalf("CreateCombo: %v", err)
	}
	free, err := db.CreatePart(ctx, "Unused", models.PartRatchet)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{"used by beyblade", used.BladeID, ErrPartInUse},
		{"used by combo only", comboOnly.ID, ErrPartInUse},
		{"unknown", 9999, ErrNotFound},
		{"unused", free.ID, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.DeletePart(ctx, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DeletePart err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := db.GetPart(ctx, free.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted part still present: %v", err)
	}
}

func TestRequireParts_WrongType(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	set := createTestParts(t, db, "X")
	swapped := PartSet{BladeID: set.RatchetID, RatchetID: set.BladeID, BitID: set.BitID}

	if err := requireParts(ctx, db.conn, set); err != nil {
		t.Fatalf("requireParts(valid): %v", err)
	}
	if err := requireParts(ctx, db.conn, swapped); !errors.Is(err, ErrWrongPartType) {
		t.Errorf("requireParts(swapped) = %v, want ErrWrongPartType", err)
	}
	missing := PartSet{BladeID: set.BladeID, RatchetID: set.RatchetID, BitID: 9999}
	if err := requireParts(ctx, db.conn, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("requireParts(missing) = %v, want ErrNotFound", err)
	}
}

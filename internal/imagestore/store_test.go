// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package imagestore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/beylog/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&config.ImageStoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	png := []byte("\x89PNG\r\n\x1a\nfake")
	if err := s.Put(ctx, 7, png); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, png) {
		t.Errorf("Get = %q, want %q", got, png)
	}

	meta, err := s.Stat(ctx, 7)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta.PartID != 7 || meta.Size != len(png) || meta.UpdatedAt.IsZero() {
		t.Errorf("meta = %+v", meta)
	}

	// Replace.
	if err := s.Put(ctx, 7, []byte("jpeg")); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, err = s.Get(ctx, 7)
	if err != nil || string(got) != "jpeg" {
		t.Errorf("Get after replace = %q, %v", got, err)
	}
}

func TestStore_Errors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"get missing", func() error { _, err := s.Get(ctx, 1); return err }, ErrNotFound},
		{"stat missing", func() error { _, err := s.Stat(ctx, 1); return err }, ErrNotFound},
		{"put empty", func() error { return s.Put(ctx, 1, nil) }, ErrEmptyImage},
		{"put too large", func() error { return s.Put(ctx, 1, make([]byte, MaxImageSize+1)) }, ErrTooLarge},
		{"delete missing", func() error { return s.Delete(ctx, 99) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Put(cancelled, 1, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Put with cancelled ctx = %v", err)
	}
}

func TestStore_GetManyDeleteCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := s.Put(ctx, id, []byte{byte(id)}); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
	}

	n, err := s.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}

	got, err := s.GetMany(ctx, []int64{1, 3, 4, 1})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 || got[1][0] != 1 || got[3][0] != 3 {
		t.Errorf("GetMany = %v", got)
	}
	if _, ok := got[4]; ok {
		t.Error("part without image must be absent")
	}

	if err := s.Delete(ctx, 1, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if _, err := s.Stat(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stat after delete = %v", err)
	}
	n, err = s.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count after delete = %d, %v; want 1", n, err)
	}
}

func TestStore_FileBacked(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImageStoreConfig{Path: dir}

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put(context.Background(), 5, []byte("persisted")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.RunGC(0.5); err != nil {
		t.Fatalf("RunGC: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(context.Background(), 5)
	if err != nil || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestStore_Closed(t *testing.T) {
	s, err := Open(&config.ImageStoreConfig{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC in memory: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping after close = %v, want ErrClosed", err)
	}
	if _, err := s.Get(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after close = %v, want ErrClosed", err)
	}
}

func TestDecodeBase64Image(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "aGVsbG8=", "hello", nil},
		{"data url", "data:image/png;base64,aGVsbG8=", "hello", nil},
		{"unpadded", "aGVsbG8", "hello", nil},
		{"surrounding space", "  aGVsbG8=\n", "hello", nil},
		{"empty", "", "", ErrEmptyImage},
		{"data url without payload", "data:image/png;base64", "", ErrInvalidImage},
		{"empty data url payload", "data:image/png;base64,", "", ErrEmptyImage},
		{"not base64", "***", "", ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64Image(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if EncodeBase64([]byte("hello")) != "aGVsbG8=" {
		t.Error("EncodeBase64 mismatch")
	}
}

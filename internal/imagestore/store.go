// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package imagestore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/beylog/internal/config"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	imageKeyPrefix = "img:"
	metaKeyPrefix  = "meta:"
)

// MaxImageSize bounds a single decoded image.
const MaxImageSize = 5 << 20

var (
	// ErrNotFound is returned when a part has no image.
	ErrNotFound = errors.New("image not found")

	// ErrEmptyImage is returned when storing zero bytes.
	ErrEmptyImage = errors.New("image is empty")

	// ErrTooLarge is returned when an image exceeds MaxImageSize.
	ErrTooLarge = errors.New("image too large")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("image store is closed")
)

// Meta describes a stored image.
type Meta struct {
	PartID    int64     `json:"partId"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is a BadgerDB-backed image store.
type Store struct {
	db       *badger.DB
	inMemory bool

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *config.ImageStoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Image store opened")
	return &Store{db: db, inMemory: cfg.InMemory}, nil
}

func imageKey(partID int64) []byte {
	return []byte(imageKeyPrefix + strconv.FormatInt(partID, 10))
}

func metaKey(partID int64) []byte {
	return []byte(metaKeyPrefix + strconv.FormatInt(partID, 10))
}

// check fails fast on a cancelled context or a closed store.
func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Put stores or replaces the image of a part.
func (s *Store) Put(ctx context.Context, partID int64, data []byte) (err error) {
	defer func() { metrics.RecordImageOperation("put", err) }()
	if err := s.check(ctx); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("part %d: %d bytes: %w", partID, len(data), ErrTooLarge)
	}

	meta, err := json.Marshal(Meta{PartID: partID, Size: len(data), UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(imageKey(partID), data); err != nil {
			return fmt.Errorf("set image: %w", err)
		}
		if err := txn.Set(metaKey(partID), meta); err != nil {
			return fmt.Errorf("set meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.ImageStoreBytesWritten.Add(float64(len(data)))
	return nil
}

// Get returns the image of a part.
func (s *Store) Get(ctx context.Context, partID int64) (_ []byte, err error) {
	defer func() {
		if !errors.Is(err, ErrNotFound) {
			metrics.RecordImageOperation("get", err)
		}
	}()
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(imageKey(partID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("part %d: %w", partID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get image: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetMany returns the images of the given parts in one read transaction.
// Parts without an image are absent from the result.
func (s *Store) GetMany(ctx context.Context, partIDs []int64) (_ map[int64][]byte, err error) {
	defer func() { metrics.RecordImageOperation("get_many", err) }()
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	images := make(map[int64][]byte, len(partIDs))
	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range partIDs {
			if _, seen := images[id]; seen {
				continue
			}
			item, err := txn.Get(imageKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get image %d: %w", id, err)
			}
			data, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("copy image %d: %w", id, err)
			}
			images[id] = data
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Stat returns the metadata of a part's image.
func (s *Store) Stat(ctx context.Context, partID int64) (*Meta, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var meta Meta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(partID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("part %d: %w", partID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get meta: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Delete removes the images of the given parts. Missing images are ignored.
func (s *Store) Delete(ctx context.Context, partIDs ...int64) (err error) {
	defer func() { metrics.RecordImageOperation("delete", err) }()
	if err := s.check(ctx); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range partIDs {
			if err := txn.Delete(imageKey(id)); err != nil {
				return fmt.Errorf("delete image %d: %w", id, err)
			}
			if err := txn.Delete(metaKey(id)); err != nil {
				return fmt.Errorf("delete meta %d: %w", id, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored images.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(imageKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Ping reports whether the store is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// RunGC reclaims value log space until nothing more can be rewritten.
// In-memory stores have no value log and return nil.
func (s *Store) RunGC(discardRatio float64) error {
	if err := s.check(context.Background()); err != nil {
		return err
	}
	if s.inMemory {
		return nil
	}

	rewritten := false
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.ImageStoreGCRuns.WithLabelValues("error").Inc()
			return fmt.Errorf("run GC: %w", err)
		}
		rewritten = true
	}

	if rewritten {
		metrics.ImageStoreGCRuns.WithLabelValues("rewritten").Inc()
	} else {
		metrics.ImageStoreGCRuns.WithLabelValues("nothing").Inc()
	}
	return nil
}

// Close closes the underlying database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/beylog/internal/logging"
)

// DefaultGCDiscardRatio is the Badger value log discard ratio used by the
// image GC service.
const DefaultGCDiscardRatio = 0.5

// maxConsecutiveGCFailures failed runs in a row make Serve return so that
// suture restarts the service with backoff.
const maxConsecutiveGCFailures = 3

// ImageCollector reclaims image store space. Satisfied by *imagestore.Store.
type ImageCollector interface {
	RunGC(discardRatio float64) error
}

// ImageGCService runs image store garbage collection on a fixed interval.
type ImageGCService struct {
	store        ImageCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewImageGCService creates the service. A non-positive interval becomes
// 10 minutes.
func NewImageGCService(store ImageCollector, interval time.Duration) *ImageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ImageGCService{
		store:        store,
		interval:     interval,
		discardRatio: DefaultGCDiscardRatio,
		name:         "image-gc",
	}
}

// Serve implements suture.Service.
func (s *ImageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(s.discardRatio); err != nil {
				failures++
				logging.Warn().Err(err).Int("consecutive_failures", failures).Msg("Image store GC failed")
				if failures >= maxConsecutiveGCFailures {
					return fmt.Errorf("image store GC failed %d times: %w", failures, err)
				}
				continue
			}
			failures = 0
			logging.Debug().Dur("duration", time.Since(start)).Msg("Image store GC completed")
		}
	}
}

func (s *ImageGCService) String() string {
	return s.name
}

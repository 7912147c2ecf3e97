// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"fmt"
	"testing"
	"time"
)

func TestLoginThrottle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	th := NewLoginThrottle(3, 15*time.Minute)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !th.Allowed("ash@example.com") {
			t.Fatalf("attempt %d throttled too early", i+1)
		}
		th.Failure("ash@example.com")
	}
	if th.Allowed("ash@example.com") {
		t.Error("fourth attempt should be throttled")
	}
	if th.Allowed("  ASH@example.com ") {
		t.Error("throttle key must be case and whitespace insensitive")
	}
	if !th.Allowed("misty@example.com") {
		t.Error("other accounts must not be affected")
	}

	// one attempt is restored every window/maxAttempts
	now = now.Add(6 * time.Minute)
	if !th.Allowed("ash@example.com") {
		t.Error("attempt should be restored after window/maxAttempts")
	}

	th.Failure("ash@example.com")
	th.Success("ash@example.com")
	if !th.Allowed("ash@example.com") {
		t.Error("success must clear the account")
	}
}

func TestLoginThrottle_Prune(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	th := NewLoginThrottle(5, time.Minute)
	th.now = func() time.Time { return now }

	for i := 0; i < pruneThreshold; i++ {
		th.Failure(fmt.Sprintf("user%d@example.com", i))
	}
	now = now.Add(time.Hour)
	th.Failure("late@example.com")

	th.mu.Lock()
	size := len(th.limiters)
	th.mu.Unlock()
	if size != 1 {
		t.Errorf("limiters after prune = %d, want 1", size)
	}
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold is the table size above which recovered entries are dropped.
const pruneThreshold = 1024

// LoginThrottle limits failed logins per account. Each account may fail
// maxAttempts times in a burst; one further attempt is restored every
// window/maxAttempts. A successful login clears the account's history.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
	now      func() time.Time
}

// NewLoginThrottle creates a throttle allowing maxAttempts failures per window.
func NewLoginThrottle(maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(window / time.Duration(maxAttempts)),
		burst:    maxAttempts,
		now:      time.Now,
	}
}

// Allowed reports whether another attempt for account may proceed.
func (t *LoginThrottle) Allowed(account string) bool {
	key := throttleKey(account)
	t.mu.Lock()
	defer t.mu.Unlock()

	lim, ok := t.limiters[key]
	if !ok {
		return true
	}
	return lim.TokensAt(t.now()) >= 1
}

// Failure records a failed attempt for account.
func (t *LoginThrottle) Failure(account string) {
	key := throttleKey(account)
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	lim, ok := t.limiters[key]
	if !ok {
		if len(t.limiters) >= pruneThreshold {
			t.pruneLocked(now)
		}
		lim = rate.NewLimiter(t.every, t.burst)
		t.limiters[key] = lim
	}
	lim.AllowN(now, 1)
}

// Success clears the failure history of account.
func (t *LoginThrottle) Success(account string) {
	key := throttleKey(account)
	t.mu.Lock()
	delete(t.limiters, key)
	t.mu.Unlock()
}

// pruneLocked drops accounts that have fully recovered.
func (t *LoginThrottle) pruneLocked(now time.Time) {
	for key, lim := range t.limiters {
		if lim.TokensAt(now) >= float64(t.burst) {
			delete(t.limiters, key)
		}
	}
}

func throttleKey(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}

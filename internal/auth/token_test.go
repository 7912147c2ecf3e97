// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret-0123456789-abcdefghij"

var testIssuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock is a settable clock for codec tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestCodec(t *testing.T) (*TokenCodec, *testClock) {
	t.Helper()
	clock := &testClock{now: testIssuedAt}
	codec, err := NewTokenCodec(testSecret, 0, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	return codec, clock
}

// signRaw signs arbitrary claims with the test secret.
func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	var key interface{} = []byte(testSecret)
	if method == jwt.SigningMethodNone {
		key = jwt.UnsafeAllowNoneSignatureType
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func validRegisteredClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(testIssuedAt),
		NotBefore: jwt.NewNumericDate(testIssuedAt),
		ExpiresAt: jwt.NewNumericDate(testIssuedAt.Add(time.Hour)),
	}
}

func TestNewTokenCodec(t *testing.T) {
	if _, err := NewTokenCodec("", 0); err == nil {
		t.Error("NewTokenCodec(\"\") expected error")
	}
	if _, err := NewTokenCodec(testSecret, -time.Second); err == nil {
		t.Error("NewTokenCodec(negative ttl) expected error")
	}

	codec, err := NewTokenCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	if codec.TTL() != 7*24*time.Hour {
		t.Errorf("TTL() = %v, want 168h", codec.TTL())
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, _ := newTestCodec(t)

	tests := []struct {
		subject int64
		isAdmin bool
	}{
		{1, false},
		{42, false},
		{7, true},
		{math.MaxInt64, true},
	}

	for _, tt := range tests {
		token, err := codec.Issue(tt.subject, tt.isAdmin)
		if err != nil {
			t.Fatalf("Issue(%d, %v) error = %v", tt.subject, tt.isAdmin, err)
		}
		got, err := codec.Verify(token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		want := Principal{UserID: tt.subject, IsAdmin: tt.isAdmin}
		if got != want {
			t.Errorf("Verify() = %+v, want %+v", got, want)
		}
	}
}

func TestTokenCodec_IssueRejectsNonPositiveSubject(t *testing.T) {
	codec, _ := newTestCodec(t)
	for _, subject := range []int64{0, -1} {
		if _, err := codec.Issue(subject, false); err == nil {
			t.Errorf("Issue(%d) expected error", subject)
		}
	}
}

func TestTokenCodec_AnyByteMutationIsInvalid(t *testing.T) {
	codec, _ := newTestCodec(t)
	token, err := codec.Issue(42, true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for i := 0; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		mutated := token[:i] + string(replacement) + token[i+1:]

		_, err := codec.Verify(mutated)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("Verify(mutation at %d) error = %v, want ErrInvalidSignature", i, err)
		}
	}
}

func TestTokenCodec_ForeignTokens(t *testing.T) {
	codec, _ := newTestCodec(t)

	other, err := NewTokenCodec("a-completely-different-secret-value!!", 0, WithClock(func() time.Time { return testIssuedAt }))
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	foreign, err := other.Issue(42, true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"other secret", foreign},
		{"garbage", "not-a-jwt"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"alg none", signRaw(t, jwt.SigningMethodNone, &sessionClaims{Admin: true, RegisteredClaims: validRegisteredClaims("42")})},
		{"hs512 same secret", signRaw(t, jwt.SigningMethodHS512, &sessionClaims{Admin: true, RegisteredClaims: validRegisteredClaims("42")})},
		{"non-numeric subject", signRaw(t, jwt.SigningMethodHS256, &sessionClaims{RegisteredClaims: validRegisteredClaims("alice")})},
		{"zero subject", signRaw(t, jwt.SigningMethodHS256, &sessionClaims{RegisteredClaims: validRegisteredClaims("0")})},
		{"negative subject", signRaw(t, jwt.SigningMethodHS256, &sessionClaims{RegisteredClaims: validRegisteredClaims("-5")})},
		{"empty subject", signRaw(t, jwt.SigningMethodHS256, &sessionClaims{RegisteredClaims: validRegisteredClaims("")})},
		{"missing expiry", signRaw(t, jwt.SigningMethodHS256, &sessionClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			if !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
			}
		})
	}
}

func TestTokenCodec_EmptyToken(t *testing.T) {
	codec, _ := newTestCodec(t)
	if _, err := codec.Verify(""); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Verify(\"\") error = %v, want ErrMissingCredential", err)
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	codec, clock := newTestCodec(t)
	token, err := codec.Issue(42, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expiry := testIssuedAt.Add(7 * 24 * time.Hour)
	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issue", testIssuedAt, nil},
		{"one second before expiry", expiry.Add(-time.Second), nil},
		{"at expiry", expiry, ErrExpired},
		{"one second after expiry", expiry.Add(time.Second), ErrExpired},
		{"a year later", expiry.Add(365 * 24 * time.Hour), ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.at
			p, err := codec.Verify(token)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Verify() error = %v", err)
				}
				if p.UserID != 42 {
					t.Errorf("UserID = %d, want 42", p.UserID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrInvalidSignature) {
				t.Error("expired token must not be reported as an invalid signature")
			}
		})
	}
}

func TestNewEphemeralSecret(t *testing.T) {
	a, err := NewEphemeralSecret()
	if err != nil {
		t.Fatalf("NewEphemeralSecret() error = %v", err)
	}
	b, err := NewEphemeralSecret()
	if err != nil {
		t.Fatalf("NewEphemeralSecret() error = %v", err)
	}
	if len(a) < 32 {
		t.Errorf("secret length = %d, want >= 32", len(a))
	}
	if a == b {
		t.Error("two ephemeral secrets must differ")
	}
	if _, err := NewTokenCodec(a, 0); err != nil {
		t.Errorf("ephemeral secret rejected: %v", err)
	}
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
//
// A codec is immutable after construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption configures a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewTokenCodec creates a codec signing with secret. A ttl of zero selects
// DefaultTokenTTL. An empty secret is rejected.
func NewTokenCodec(secret string, ttl time.Duration, opts ...TokenOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("token codec: signing secret is required")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("token codec: ttl must not be negative")
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	c := &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given user.
func (c *TokenCodec) Issue(subject int64, isAdmin bool) (string, error) {
	if subject <= 0 {
		return "", fmt.Errorf("token codec: subject must be positive, got %d", subject)
	}

	now := c.now()
	claims := &sessionClaims{
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	TokensIssued.Inc()
	return signed, nil
}

// Verify checks the token and returns its principal.
//
// An authentic token past its expiry yields ErrExpired. Every other failure,
// including a subject that is not a positive integer, yields
// ErrInvalidSignature.
func (c *TokenCodec) Verify(token string) (Principal, error) {
	p, err := c.verify(token)
	TokenVerifications.WithLabelValues(reasonFor(err)).Inc()
	return p, err
}

func (c *TokenCodec) verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrMissingCredential
	}

	claims := &sessionClaims{}
	parsed, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpired
		}
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !parsed.Valid {
		return Principal{}, ErrInvalidSignature
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Principal{}, fmt.Errorf("%w: malformed subject", ErrInvalidSignature)
	}

	return Principal{UserID: userID, IsAdmin: claims.Admin}, nil
}

// NewEphemeralSecret returns a random 48-byte secret encoded as base64.
// It is meant for development processes started without JWT_SECRET; tokens
// signed with it die with the process.
func NewEphemeralSecret() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

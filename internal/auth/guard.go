// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/beylog/internal/logging"
)

// Capability names an operation restricted by role, together with the
// message shown when it is denied.
type Capability struct {
	Object string
	Action string
	Denied string
}

// Name returns "object.action".
func (c *Capability) Name() string {
	return c.Object + "." + c.Action
}

// Authorizer decides whether role may perform action on object.
type Authorizer interface {
	Authorize(role, object, action string) (bool, error)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(role, object, action string) (bool, error)

// Authorize calls f.
func (f AuthorizerFunc) Authorize(role, object, action string) (bool, error) {
	return f(role, object, action)
}

// DenialWriter renders a guard failure. err is one of the package's
// sentinel errors, a *ForbiddenError, or an internal error.
type DenialWriter func(w http.ResponseWriter, r *http.Request, err error)

// Guard performs the precise per-operation check in front of a handler.
type Guard struct {
	verifier   Verifier
	authorizer Authorizer
	deny       DenialWriter
	security   *logging.SecurityLogger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithDenialWriter replaces the default plain-text denial rendering.
func WithDenialWriter(dw DenialWriter) GuardOption {
	return func(g *Guard) {
		if dw != nil {
			g.deny = dw
		}
	}
}

// WithSecurityLogger replaces the security event logger.
func WithSecurityLogger(l *logging.SecurityLogger) GuardOption {
	return func(g *Guard) {
		if l != nil {
			g.security = l
		}
	}
}

// NewGuard creates a guard. authorizer is consulted on every capability
// check; its answers are not cached.
func NewGuard(verifier Verifier, authorizer Authorizer, opts ...GuardOption) *Guard {
	g := &Guard{
		verifier:   verifier,
		authorizer: authorizer,
		deny:       defaultDenialWriter,
		security:   logging.NewSecurityLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check authenticates the request and, when capability is non-nil,
// authorizes the principal for it.
//
//	no credential            -> ErrMissingCredential
//	bad or foreign signature -> ErrInvalidSignature
//	past expiry              -> ErrExpired
//	role lacks capability    -> *ForbiddenError (errors.Is ErrForbidden)
func (g *Guard) Check(r *http.Request, capability *Capability) (Principal, error) {
	token, ok := SessionToken(r)
	if !ok {
		return Principal{}, ErrMissingCredential
	}

	principal, err := g.verifier.Verify(token)
	if err != nil {
		return Principal{}, err
	}

	if err := g.Authorize(principal, capability); err != nil {
		return principal, err
	}
	return principal, nil
}

// Authorize checks an already verified principal against capability.
// A nil capability only requires authentication.
func (g *Guard) Authorize(p Principal, capability *Capability) error {
	if capability == nil {
		return nil
	}
	if g.authorizer == nil {
		return fmt.Errorf("no authorizer configured for %s", capability.Name())
	}

	allowed, err := g.authorizer.Authorize(p.Role(), capability.Object, capability.Action)
	if err != nil {
		return fmt.Errorf("authorization check for %s failed: %w", capability.Name(), err)
	}
	if !allowed {
		return &ForbiddenError{Capability: capability.Name(), Message: capability.Denied}
	}
	return nil
}

// Authenticated requires a valid session.
func (g *Guard) Authenticated(next http.Handler) http.Handler {
	return g.Require(nil)(next)
}

// Require returns middleware admitting only principals holding capability.
func (g *Guard) Require(capability *Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := g.Check(r, capability)
			GuardOutcomes.WithLabelValues(reasonFor(err)).Inc()
			if err != nil {
				g.logDenial(r, principal, err)
				g.deny(w, r, err)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			ctx = logging.ContextWithUserID(ctx, principal.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional attaches the principal when a valid session is present and
// otherwise lets the request through anonymously.
func (g *Guard) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := g.Check(r, nil)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := ContextWithPrincipal(r.Context(), principal)
		ctx = logging.ContextWithUserID(ctx, principal.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) logDenial(r *http.Request, p Principal, err error) {
	if errors.Is(err, ErrForbidden) {
		g.security.LogAccessDenied(p.UserID, r.URL.Path, r.RemoteAddr, reasonFor(err))
		return
	}
	if StatusFor(err) == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Route guard failed")
		return
	}
	logging.Ctx(r.Context()).Debug().Str("reason", reasonFor(err)).Str("path", r.URL.Path).Msg("Unauthenticated request")
}

func defaultDenialWriter(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusUnauthorized:
		http.Error(w, "Unauthorized", status)
	case http.StatusForbidden:
		http.Error(w, err.Error(), status)
	default:
		http.Error(w, "Internal server error", status)
	}
}

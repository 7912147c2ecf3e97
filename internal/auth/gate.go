// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"net/http"
	"strings"

	"github.com/tomtom215/beylog/internal/logging"
)

// Verifier verifies a session token. *TokenCodec implements it.
type Verifier interface {
	Verify(token string) (Principal, error)
}

// RouteRule requires Role for every path under Prefix.
type RouteRule struct {
	Prefix string
	Role   string
}

// GatePolicy is the Edge Gate's routing table.
type GatePolicy struct {
	// PublicExact paths are admitted without a credential on exact match.
	PublicExact []string

	// PublicPrefixes are admitted without a credential, matched on path
	// segment boundaries: "/login" covers "/login/reset" but not "/loginx".
	PublicPrefixes []string

	// StaticPrefixes bypass the gate entirely.
	StaticPrefixes []string

	AdminRoutes []RouteRule

	LoginPath     string
	DashboardPath string
}

// DefaultGatePolicy returns the standard public/static tables with the
// given admin route table.
func DefaultGatePolicy(adminRoutes []RouteRule) GatePolicy {
	return GatePolicy{
		PublicExact: []string{"/"},
		PublicPrefixes: []string{
			"/login",
			"/register",
			"/api/auth/login",
			"/api/auth/register",
			"/api/health",
			"/metrics",
			"/swagger",
		},
		StaticPrefixes: []string{
			"/static",
			"/favicon.ico",
			"/placeholder.svg",
		},
		AdminRoutes:   adminRoutes,
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}
}

// GateResult is the outcome of an Edge Gate decision.
type GateResult int

const (
	// Admit lets the request through.
	Admit GateResult = iota
	// RedirectLogin sends the client to the login page.
	RedirectLogin
	// RedirectDashboard sends an authenticated client lacking a role to the dashboard.
	RedirectDashboard
)

func (g GateResult) String() string {
	switch g {
	case Admit:
		return "admit"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Gate is the coarse per-request filter in front of every route.
type Gate struct {
	policy   GatePolicy
	verifier Verifier
}

// NewGate creates a gate using verifier to check credentials.
func NewGate(policy GatePolicy, verifier Verifier) *Gate {
	return &Gate{policy: policy, verifier: verifier}
}

// Decide classifies a request by path and credential. It performs no I/O.
//
// The verification failure reason is not surfaced: expired and forged
// tokens both lead to the login page.
func (g *Gate) Decide(path, credential string) GateResult {
	if g.isStatic(path) || g.isPublic(path) {
		return Admit
	}
	if credential == "" {
		return RedirectLogin
	}

	principal, err := g.verifier.Verify(credential)
	if err != nil {
		return RedirectLogin
	}

	for _, rule := range g.policy.AdminRoutes {
		if matchPrefix(path, rule.Prefix) && !hasRole(principal, rule.Role) {
			return RedirectDashboard
		}
	}
	return Admit
}

// Middleware applies Decide to every request, redirecting with
// 307 Temporary Redirect when the gate does not admit.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, _ := SessionToken(r)
		result := g.Decide(r.URL.Path, credential)
		GateDecisions.WithLabelValues(result.String()).Inc()

		switch result {
		case RedirectLogin:
			logging.Ctx(r.Context()).Debug().
				Str("path", r.URL.Path).
				Str("credential", logging.SanitizeToken(credential)).
				Msg("Gate redirect to login")
			http.Redirect(w, r, g.policy.LoginPath, http.StatusTemporaryRedirect)
		case RedirectDashboard:
			logging.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("Gate redirect to dashboard")
			http.Redirect(w, r, g.policy.DashboardPath, http.StatusTemporaryRedirect)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Gate) isStatic(path string) bool {
	for _, prefix := range g.policy.StaticPrefixes {
		if matchPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) isPublic(path string) bool {
	for _, exact := range g.policy.PublicExact {
		if path == exact {
			return true
		}
	}
	for _, prefix := range g.policy.PublicPrefixes {
		if matchPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// matchPrefix reports whether path is prefix or lies beneath it.
// Matching is case-sensitive.
func matchPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func hasRole(p Principal, role string) bool {
	switch role {
	case RoleAdmin:
		return p.IsAdmin
	case RoleUser:
		return true
	default:
		return false
	}
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package authz

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/beylog/internal/auth"
)

func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	enforcer, err := NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	return enforcer
}

func assertAuthorize(t *testing.T, e *Enforcer, role, object, action string, want bool) {
	t.Helper()
	got, err := e.Authorize(role, object, action)
	if err != nil {
		t.Fatalf("Authorize(%s, %s, %s) error = %v", role, object, action, err)
	}
	if got != want {
		t.Errorf("Authorize(%s, %s, %s) = %v, want %v", role, object, action, got, want)
	}
}

func TestEnforcer_Capabilities(t *testing.T) {
	e := setupEnforcer(t)

	for _, c := range All {
		assertAuthorize(t, e, auth.RoleAdmin, c.Object, c.Action, true)
		assertAuthorize(t, e, auth.RoleUser, c.Object, c.Action, false)
		assertAuthorize(t, e, "", c.Object, c.Action, false)
		assertAuthorize(t, e, "guest", c.Object, c.Action, false)
	}
}

func TestEnforcer_UserPermissionsInherited(t *testing.T) {
	e := setupEnforcer(t)

	tests := []struct {
		object, action string
	}{
		{"combos", "create"},
		{"combos", "like"},
		{"collection", "add"},
		{"collection", "remove"},
		{"parts", "read"},
	}
	for _, tt := range tests {
		assertAuthorize(t, e, auth.RoleUser, tt.object, tt.action, true)
		assertAuthorize(t, e, auth.RoleAdmin, tt.object, tt.action, true)
	}

	roles := e.RolesFor(auth.RoleAdmin)
	if len(roles) != 2 || roles[0] != auth.RoleAdmin || roles[1] != auth.RoleUser {
		t.Errorf("RolesFor(admin) = %v, want [admin user]", roles)
	}
}

func TestEnforcer_CapabilityMessages(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range All {
		if c.Denied == "" {
			t.Errorf("capability %s has no denial message", c.Name())
		}
		if seen[c.Name()] {
			t.Errorf("capability %s declared twice", c.Name())
		}
		seen[c.Name()] = true
	}
}

func TestEnforcer_PolicyFile(t *testing.T) {
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.csv")
	policy := "p, user, parts, create\np, admin, stats, read\ng, admin, user\n"
	if err := os.WriteFile(policyPath, []byte(policy), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := NewEnforcer(&EnforcerConfig{PolicyPath: policyPath})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	assertAuthorize(t, e, auth.RoleUser, "parts", "create", true)
	assertAuthorize(t, e, auth.RoleUser, "stats", "read", false)
	assertAuthorize(t, e, auth.RoleAdmin, "parts", "create", true)

	if got := len(e.GetPolicy()); got != 2 {
		t.Errorf("GetPolicy() len = %d, want 2", got)
	}
}

func TestLoadEmbeddedPolicy_Malformed(t *testing.T) {
	e := setupEnforcer(t)
	for _, line := range []string{"p, admin, parts", "g, admin", "x, a, b, c"} {
		if err := loadEmbeddedPolicy(e.enforcer, line); err == nil {
			t.Errorf("loadEmbeddedPolicy(%q) expected error", line)
		}
	}
}

func TestEnforcer_RecordsDecisions(t *testing.T) {
	e := setupEnforcer(t)
	counter := DecisionsTotal.WithLabelValues(auth.RoleUser, "stats", "read", "deny")
	before := testutil.ToFloat64(counter)

	assertAuthorize(t, e, auth.RoleUser, "stats", "read", false)

	if after := testutil.ToFloat64(counter); after != before+1 {
		t.Errorf("deny counter = %v, want %v", after, before+1)
	}
}

// TestEnforcer_WithGuard runs the Route Guard against the real policy.
func TestEnforcer_WithGuard(t *testing.T) {
	codec, err := auth.NewTokenCodec("enforcer-test-secret-0123456789abcdef", 0)
	if err != nil {
		t.Fatal(err)
	}
	guard := auth.NewGuard(codec, setupEnforcer(t))

	check := func(isAdmin bool) error {
		token, err := codec.Issue(42, isAdmin)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/parts", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
		_, err = guard.Check(req, CreatePart)
		return err
	}

	if err := check(false); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("user Check() error = %v, want ErrForbidden", err)
	} else if err.Error() != CreatePart.Denied {
		t.Errorf("denial message = %q, want %q", err.Error(), CreatePart.Denied)
	}
	if err := check(true); err != nil {
		t.Errorf("admin Check() error = %v", err)
	}
}

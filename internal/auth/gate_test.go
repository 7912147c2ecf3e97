// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/beylog/internal/logging"
)

var testAdminRoutes = []RouteRule{
	{Prefix: "/admin", Role: RoleAdmin},
	{Prefix: "/api/admin", Role: RoleAdmin},
}

func newTestGate(t *testing.T) (*Gate, *TokenCodec, *testClock) {
	t.Helper()
	codec, clock := newTestCodec(t)
	return NewGate(DefaultGatePolicy(testAdminRoutes), codec), codec, clock
}

func mustIssue(t *testing.T, codec *TokenCodec, subject int64, isAdmin bool) string {
	t.Helper()
	token, err := codec.Issue(subject, isAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

func TestGate_Decide(t *testing.T) {
	gate, codec, _ := newTestGate(t)
	userToken := mustIssue(t, codec, 42, false)
	adminToken := mustIssue(t, codec, 1, true)

	tests := []struct {
		name       string
		path       string
		credential string
		want       GateResult
	}{
		// public and static paths need no credential
		{"root", "/", "", Admit},
		{"login page", "/login", "", Admit},
		{"register page", "/register", "", Admit},
		{"login api", "/api/auth/login", "", Admit},
		{"register api", "/api/auth/register", "", Admit},
		{"health", "/api/health", "", Admit},
		{"static asset", "/static/app.js", "", Admit},
		{"favicon", "/favicon.ico", "", Admit},
		{"public with bad credential", "/login", "garbage", Admit},

		// segment-boundary matching
		{"root is exact only", "/dashboard", "", RedirectLogin},
		{"lookalike public prefix", "/loginx", "", RedirectLogin},
		{"lookalike register", "/register-admin", "", RedirectLogin},

		// protected paths
		{"dashboard no cookie", "/dashboard", "", RedirectLogin},
		{"api no cookie", "/api/parts", "", RedirectLogin},
		{"tampered credential", "/dashboard", userToken + "x", RedirectLogin},
		{"dashboard user", "/dashboard", userToken, Admit},
		{"beyblades user", "/api/beyblades/list", userToken, Admit},

		// admin routes
		{"admin page as user", "/admin", userToken, RedirectDashboard},
		{"admin subpage as user", "/admin/parts", userToken, RedirectDashboard},
		{"admin api as user", "/api/admin/stats", userToken, RedirectDashboard},
		{"admin page as admin", "/admin", adminToken, Admit},
		{"admin api as admin", "/api/admin/register", adminToken, Admit},
		{"admin lookalike as user", "/administrator", userToken, Admit},
		{"admin case sensitive", "/Admin", userToken, Admit},
		{"admin page no cookie", "/admin", "", RedirectLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Decide(tt.path, tt.credential); got != tt.want {
				t.Errorf("Decide(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGate_ExpiredCredentialRedirectsToLogin(t *testing.T) {
	gate, codec, clock := newTestGate(t)
	token := mustIssue(t, codec, 1, true)

	clock.now = testIssuedAt.Add(8 * 24 * time.Hour)
	if got := gate.Decide("/admin", token); got != RedirectLogin {
		t.Errorf("Decide() = %v, want RedirectLogin", got)
	}
}

func TestGate_ConfiguredUserRoute(t *testing.T) {
	codec, _ := newTestCodec(t)
	policy := DefaultGatePolicy([]RouteRule{{Prefix: "/members", Role: RoleUser}})
	gate := NewGate(policy, codec)

	if got := gate.Decide("/members", mustIssue(t, codec, 5, false)); got != Admit {
		t.Errorf("Decide() = %v, want Admit", got)
	}
}

func TestGate_Middleware(t *testing.T) {
	gate, codec, _ := newTestGate(t)
	userToken := mustIssue(t, codec, 42, false)

	var reached bool
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		path         string
		cookie       string
		wantStatus   int
		wantLocation string
		wantReached  bool
	}{
		{"public", "/login", "", http.StatusOK, "", true},
		{"protected no cookie", "/dashboard", "", http.StatusTemporaryRedirect, "/login", false},
		{"admin as user", "/admin", userToken, http.StatusTemporaryRedirect, "/dashboard", false},
		{"protected with cookie", "/dashboard", userToken, http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if reached != tt.wantReached {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReached)
			}
		})
	}
}

func TestGate_Middleware_MasksCredentialInLog(t *testing.T) {
	var buf bytes.Buffer
	original := logging.Logger()
	originalLevel := zerolog.GlobalLevel()
	logging.SetLogger(logging.NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		logging.SetLogger(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	gate, _, _ := newTestGate(t)
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("forged credential reached the handler")
	}))

	forged := "eyJhbGciOiJIUzI1NiJ9.forged-payload.forged-signature"
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if strings.Contains(out, forged) {
		t.Errorf("log contains the raw credential: %s", out)
	}
	if !strings.Contains(out, `"credential":"`+logging.SanitizeToken(forged)+`"`) {
		t.Errorf("log missing masked credential: %s", out)
	}
}

func TestMatchPrefix(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"/admin", "/admin", true},
		{"/admin/", "/admin", true},
		{"/admin/users", "/admin", true},
		{"/adminx", "/admin", false},
		{"/static/a.css", "/static/", true},
		{"/x", "", false},
	}
	for _, tt := range tests {
		if got := matchPrefix(tt.path, tt.prefix); got != tt.want {
			t.Errorf("matchPrefix(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

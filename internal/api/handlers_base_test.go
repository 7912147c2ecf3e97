// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/authz"
	"github.com/tomtom215/beylog/internal/config"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/models"
)

const testSecret = "api-test-secret-0123456789-abcdefghijklmnop"

// testDBSemaphore serializes DuckDB use across tests in this package.
var testDBSemaphore = make(chan struct{}, 1)

type testServer struct {
	t       *testing.T
	cfg     *config.Config
	db      *database.DB
	images  *imagestore.Store
	codec   *auth.TokenCodec
	handler *Handler
	router  http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Environment: "development"},
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1, SeedEnabled: true},
		Images:   config.ImageStoreConfig{InMemory: true},
		Security: config.SecurityConfig{
			LoginMaxAttempts:   3,
			LoginAttemptWindow: 15 * time.Minute,
			RateLimitDisabled:  true,
		},
	}
}

// newTestServer wires the full router over an in-memory catalog and image
// store.
func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, testConfig())
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	images, err := imagestore.Open(&cfg.Images)
	if err != nil {
		t.Fatalf("imagestore.Open: %v", err)
	}
	t.Cleanup(func() { _ = images.Close() })

	codec, err := auth.NewTokenCodec(testSecret, auth.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}

	gate := auth.NewGate(auth.DefaultGatePolicy([]auth.RouteRule{
		{Prefix: "/admin", Role: auth.RoleAdmin},
		{Prefix: "/api/admin", Role: auth.RoleAdmin},
	}), codec)
	guard := auth.NewGuard(codec, enforcer, auth.WithDenialWriter(WriteAuthError))

	handler := NewHandler(db, images, codec, guard, cfg)
	handler.SetVersion("test")
	router := NewRouter(handler, gate, guard, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	return &testServer{
		t:       t,
		cfg:     cfg,
		db:      db,
		images:  images,
		codec:   codec,
		handler: handler,
		router:  router.SetupChi(),
	}
}

// do sends a request through the full middleware stack. body is encoded as
// JSON unless it is nil.
func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			ts.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	req.RemoteAddr = "192.0.2.10:4711"

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// createUser inserts an account with password "password123" and returns it
// with a session token.
func (ts *testServer) createUser(email string, isAdmin bool) (*models.User, string) {
	ts.t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		ts.t.Fatalf("HashPassword: %v", err)
	}
	user, err := ts.db.CreateUser(context.Background(), email, "", hash, isAdmin)
	if err != nil {
		ts.t.Fatalf("CreateUser: %v", err)
	}
	token, err := ts.codec.Issue(user.ID, user.IsAdmin)
	if err != nil {
		ts.t.Fatalf("Issue: %v", err)
	}
	return user, token
}

// createParts inserts one part of each type.
func (ts *testServer) createParts(suffix string) database.PartSet {
	ts.t.Helper()
	ctx := context.Background()

	ids := make([]int64, 0, 3)
	for _, t := range models.PartTypes {
		p, err := ts.db.CreatePart(ctx, string(t)+suffix, t)
		if err != nil {
			ts.t.Fatalf("CreatePart: %v", err)
		}
		ids = append(ids, p.ID)
	}
	return database.PartSet{BladeID: ids[0], RatchetID: ids[1], BitID: ids[2]}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

// decode parses the envelope, checks the status and unmarshals data into
// dst when dst is non-nil.
func decode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, dst interface{}) testEnvelope {
	t.Helper()

	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, wantStatus, rec.Body.String())
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v; body = %s", err, rec.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("unmarshal data: %v; data = %s", err, env.Data)
		}
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) *APIError {
	t.Helper()

	env := decode(t, rec, wantStatus, nil)
	if env.Success {
		t.Fatal("success = true on error response")
	}
	if env.Error == nil {
		t.Fatalf("error missing; body = %s", rec.Body.String())
	}
	if env.Error.Code != wantCode {
		t.Errorf("error code = %q, want %q (%s)", env.Error.Code, wantCode, env.Error.Message)
	}
	return env.Error
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig()
	h := NewHandler(nil, nil, nil, nil, cfg)
	if h.throttle == nil || h.security == nil {
		t.Fatal("throttle and security logger must be initialized")
	}
	if h.secureCookies() {
		t.Error("development must not set Secure cookies")
	}

	cfg.Server.Environment = "production"
	if !h.secureCookies() {
		t.Error("production must set Secure cookies")
	}
}

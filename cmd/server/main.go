// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/tomtom215/beylog/docs" // swagger docs
	"github.com/tomtom215/beylog/internal/api"
	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/authz"
	"github.com/tomtom215/beylog/internal/config"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/imagestore"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/metrics"
	"github.com/tomtom215/beylog/internal/supervisor"
	"github.com/tomtom215/beylog/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("seed_enabled", cfg.Database.SeedEnabled).
		Msg("Starting BeyLog")

	secret, err := sessionSecret(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to prepare session secret")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	images, err := imagestore.Open(&cfg.Images)
	if err != nil {
		_ = db.Close()
		logging.Fatal().Err(err).Msg("Failed to open image store")
	}
	defer func() {
		if err := images.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing image store")
		}
	}()

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization policy")
	}

	codec, err := auth.NewTokenCodec(secret, cfg.Security.SessionTimeout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token codec")
	}

	gate := auth.NewGate(auth.DefaultGatePolicy(gateRules(cfg.Security.AdminRoutes)), codec)
	guard := auth.NewGuard(codec, enforcer, auth.WithDenialWriter(api.WriteAuthError))

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.Database.SeedEnabled && cfg.IsProduction() {
		logging.Warn().Msg("Catalog reset endpoint is enabled in production (SEED_ENABLED=true)")
	}

	handler := api.NewHandler(db, images, codec, guard, cfg)
	handler.SetVersion(version)
	router := api.NewRouter(handler, gate, guard,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	if !cfg.Images.InMemory {
		tree.AddStorageService(services.NewImageGCService(images, cfg.Images.GCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, shutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("BeyLog stopped")
}

// sessionSecret returns the configured signing secret. Development without
// JWT_SECRET gets a random per-process secret; config validation already
// rejected an empty secret everywhere else.
func sessionSecret(cfg *config.Config) (string, error) {
	if cfg.Security.JWTSecret != "" {
		return cfg.Security.JWTSecret, nil
	}
	if !cfg.IsDevelopment() {
		return "", config.ErrMissingJWTSecret
	}
	secret, err := auth.NewEphemeralSecret()
	if err != nil {
		return "", err
	}
	logging.Warn().Msg("JWT_SECRET is not set: using an ephemeral secret, sessions end when the process stops")
	return secret, nil
}

func gateRules(rules []config.RouteRule) []auth.RouteRule {
	out := make([]auth.RouteRule, len(rules))
	for i, r := range rules {
		out[i] = auth.RouteRule{Prefix: r.Prefix, Role: r.Role}
	}
	return out
}

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig     `koanf:"server"`
	Database DatabaseConfig   `koanf:"database"`
	Images   ImageStoreConfig `koanf:"images"`
	Security SecurityConfig   `koanf:"security"`
	Logging  LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment selects production hardening. Anything other than
	// "development"/"dev" is treated as a deployed environment.
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings for the catalog.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// SeedEnabled exposes the catalog reset endpoint to administrators.
	SeedEnabled bool `koanf:"seed_enabled"`
}

// ImageStoreConfig holds Badger settings for part images.
type ImageStoreConfig struct {
	Path string `koanf:"path"`

	// InMemory keeps images in RAM only. Used by tests and ephemeral setups.
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RouteRule marks every path under Prefix as requiring Role.
type RouteRule struct {
	Prefix string `koanf:"prefix"`
	Role   string `koanf:"role"`
}

// SecurityConfig holds authentication and request-protection settings.
type SecurityConfig struct {
	// JWTSecret signs session credentials. There is no built-in default.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// LoginMaxAttempts failed logins per account are tolerated within
	// LoginAttemptWindow before the account is throttled.
	LoginMaxAttempts   int           `koanf:"login_max_attempts"`
	LoginAttemptWindow time.Duration `koanf:"login_attempt_window"`

	CORSOrigins []string `koanf:"cors_origins"`

	// AdminRoutes is the Edge Gate's (prefix, role) table.
	AdminRoutes []RouteRule `koanf:"admin_routes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction returns true for ENVIRONMENT=production or prod.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true for ENVIRONMENT=development or dev.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "development" || env == "dev"
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

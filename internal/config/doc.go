// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package config provides centralized configuration management for BeyLog.

Configuration is layered with koanf, lowest priority first:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/beylog/config.yaml)
 3. Environment variables

# Environment Variables

Server:
  - ENVIRONMENT: production (default), staging, development
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 3000)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)

Security:
  - JWT_SECRET: session signing secret, 32+ characters. Required unless
    ENVIRONMENT=development, where an ephemeral random secret is generated.
  - SESSION_TIMEOUT: credential lifetime (default: 168h)
  - CORS_ORIGINS: comma-separated allowed origins
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
  - LOGIN_MAX_ATTEMPTS / LOGIN_ATTEMPT_WINDOW: per-account login throttle

Storage:
  - DUCKDB_PATH: catalog database file (default: /data/beylog.duckdb)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_ENABLED: expose POST /api/seed to administrators
  - IMAGE_STORE_PATH: Badger directory for part images (default: /data/images)
  - IMAGE_STORE_GC_INTERVAL: value log GC interval (default: 10m)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line

The admin route table (security.admin_routes) is only settable from YAML:

	security:
	  admin_routes:
	    - prefix: /admin
	      role: admin
	    - prefix: /api/admin
	      role: admin
*/
package config

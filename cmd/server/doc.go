// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package main is the entry point for the BeyLog server.

BeyLog keeps a catalog of Beyblade parts (blades, ratchets, bits), the
beyblades assembled from them, each user's collection, and community combos
with likes.

# Startup

 1. Configuration: koanf (defaults, YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: DuckDB
 4. Part images: Badger
 5. Access control: session token codec, Edge Gate, casbin-backed Route Guard
 6. HTTP: chi router with request id, access log, metrics, CORS, rate limits
 7. Supervision: suture tree

	beylog
	├── storage-layer
	│   └── image-gc
	└── api-layer
	    └── http-server

# Configuration

	ENVIRONMENT=production       # development enables an ephemeral JWT secret
	HTTP_PORT=3000
	JWT_SECRET=<32+ chars>       # openssl rand -base64 48
	DUCKDB_PATH=/data/beylog.duckdb
	IMAGE_STORE_PATH=/data/images
	SEED_ENABLED=false

See package config for the full list.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for up
to 10 seconds, then the image store and database are closed.
*/
package main

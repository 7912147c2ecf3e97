// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package services adapts BeyLog's long-running components to suture.Service.

  - HTTPServerService: runs the API server and drains it on shutdown
  - ImageGCService: periodic Badger value log GC for part images

Every service implements Serve(ctx) error and fmt.Stringer so suture can
name it in its event log. A returned error means "restart me"; returning
ctx.Err() after cancellation is a clean stop.
*/
package services

// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package supervisor runs BeyLog's services under a suture supervisor tree.

	beylog (root)
	├── storage-layer
	│   └── image-gc
	└── api-layer
	    └── http-server

Suture restarts failed services with exponential backoff. Events are
forwarded through sutureslog to the zerolog stream via
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewImageGCService(images, cfg.Images.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, ":3000", 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor

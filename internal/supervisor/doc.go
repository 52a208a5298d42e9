// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package supervisor runs BookOptimal's long-lived services under a suture v4
supervision tree.

	bookoptimal
	├── data-layer
	│   ├── catalog-refresh   (services.CatalogRefreshService)
	│   └── library-gc        (services.LibraryGCService, on-disk stores only)
	├── messaging-layer
	│   └── event-router      (services.EventRouterService, analytics enabled)
	└── api-layer
	    └── http-server       (services.HTTPServerService)

Each layer counts failures on its own, so a crashing event router backs off
without taking the API down. Supervisor events go to the application logger
through sutureslog and the zerolog slog bridge.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(log.Logger), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogRefreshService(cat, refreshCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Restart Behavior

TreeConfig mirrors suture.Spec. Zero values take suture's defaults: backoff
after 5 failures, failures decay over 30 seconds, 15 second backoff, and 10
seconds for each service to stop.
*/
package supervisor

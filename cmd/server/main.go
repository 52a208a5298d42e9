// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/analytics"
	"github.com/tomtom215/bookoptimal/internal/api"
	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/logging"
	"github.com/tomtom215/bookoptimal/internal/metrics"
	"github.com/tomtom215/bookoptimal/internal/supervisor"
	"github.com/tomtom215/bookoptimal/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("BookOptimal stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the stores, engine, event bus and HTTP API, then blocks in the
// supervisor tree until SIGINT or SIGTERM.
//
//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logger := logging.Logger()
	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Bool("library_in_memory", cfg.Library.InMemory).
		Bool("analytics_enabled", cfg.Analytics.Enabled).
		Msg("Starting BookOptimal")
	metrics.SetAppInfo(version)

	store, err := library.Open(library.Options{
		Path:            cfg.Library.Path,
		InMemory:        cfg.Library.InMemory,
		SeedDefaultUser: cfg.Library.SeedDefaultUser,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("Error closing library store")
		}
	}()
	logger.Info().Str("path", cfg.Library.Path).Msg("Library store opened")

	client := catalog.NewClient(&cfg.Catalog, logger)
	cat := catalog.New(client, &cfg.Catalog, logger)

	engine, err := initRecommend(&cfg.Recommend, store, logger)
	if err != nil {
		return err
	}

	handler := api.NewHandler(store, cat, engine, cfg, logger)
	handler.SetVersion(version)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	if cfg.Analytics.Enabled {
		release, err := initAnalytics(cfg, handler, tree, logger)
		if err != nil {
			return err
		}
		defer release()
	}

	router := api.NewRouter(handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.API)),
		cfg.Server.RequestTimeout, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddDataService(services.NewCatalogRefreshService(cat, services.CatalogRefreshConfig{
		RefreshOnStartup: cfg.Catalog.RefreshOnStartup,
		Interval:         cfg.Catalog.RefreshInterval,
	}, logger))
	if !cfg.Library.InMemory && cfg.Library.GCInterval > 0 {
		tree.AddDataService(services.NewLibraryGCService(store, cfg.Library.GCInterval, cfg.Library.GCDiscardRatio, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// initAnalytics opens DuckDB, connects the handler to the event bus and
// registers the event router. The returned func releases everything in
// reverse order once the tree has stopped.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func initAnalytics(cfg *config.Config, handler *api.Handler, tree *supervisor.SupervisorTree, logger zerolog.Logger) (func(), error) {
	openCtx, cancel := context.WithTimeout(context.Background(), cfg.Analytics.QueryTimeout)
	defer cancel()

	astore, err := analytics.Open(openCtx, cfg.Analytics.Path, cfg.Analytics.QueryTimeout, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.Analytics.Path).Msg("Analytics store opened")

	wmLogger := logging.NewWatermillAdapter(logger)
	bus := analytics.NewPubSub(cfg.Analytics.BufferSize, wmLogger)

	handler.SetAnalytics(astore)
	handler.SetEventPublisher(analytics.NewPublisher(bus, logger))

	routerCfg := analytics.RouterConfig{
		CloseTimeout:  cfg.Analytics.RouterCloseTimeout,
		RetryCount:    cfg.Analytics.RetryCount,
		RetryInterval: cfg.Analytics.RetryInterval,
	}
	tree.AddMessagingService(services.NewEventRouterService(func() (services.EventRouter, error) {
		r, err := analytics.NewRouter(routerCfg, bus, astore, wmLogger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}, logger))

	return func() { closeAnalytics(bus, astore, logger) }, nil
}

//nolint:gocritic // zerolog.Logger is passed by value throughout
func closeAnalytics(bus *gochannel.GoChannel, astore *analytics.Store, logger zerolog.Logger) {
	if err := bus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}
	if err := astore.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing analytics store")
	}
}

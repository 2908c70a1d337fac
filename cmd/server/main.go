// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package main is the entry point for the recommendation server.
//
// The server loads a CSV dataset (users, products, interactions),
// builds an in-memory TF-IDF snapshot, and serves hybrid
// similarity-plus-popularity recommendations over a REST API.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Engine: recommendation scoring over atomic snapshots
//  4. Supervision tree: snapshot loader (data layer) and HTTP server
//     (api layer) under suture
//
// The dataset directory must contain users.csv, products.csv and
// interactions.csv. The snapshot loader retries until the first load
// succeeds, so the server can start before the dataset is mounted;
// until then the API answers 503.
//
// Example:
//
//	export DATASET_DIR=/srv/catalog
//	export HTTP_PORT=8000
//	export DATASET_RELOAD_INTERVAL=15m
//	./recommender
//
// Shutdown on SIGINT/SIGTERM is graceful: in-flight requests get the
// configured shutdown timeout before the listener closes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/api"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/config"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/dataset"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/explain"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/logging"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/middleware"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/supervisor"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/supervisor/services"
)

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

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("dataset_dir", cfg.Dataset.Dir).
		Dur("reload_interval", cfg.Dataset.ReloadInterval).
		Msg("Starting recommendation server")

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.WithComponent("engine"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetDataProvider(dataset.Open(cfg.Dataset.Dir, logging.WithComponent("dataset")))

	var rateLimiter *middleware.RateLimiter
	if !cfg.RateLimit.Disabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		defer rateLimiter.Stop()
	}

	handler := api.NewHandler(engine, explain.NewGenerator(), cfg.Recommend.MaxK)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimiter:        rateLimiter,
		CORSAllowedOrigins: []string{"*"},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddDataService(services.NewSnapshotService(engine, services.SnapshotServiceConfig{
		ReloadInterval: cfg.Dataset.ReloadInterval,
	}, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree terminated")
	}
	logging.Info().Msg("Server stopped")
}

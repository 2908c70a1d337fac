// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/metrics"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// SnapshotEngine is the engine surface the service needs: rebuilding
// the snapshot and reading its state for metrics.
type SnapshotEngine interface {
	Rebuild(ctx context.Context) error
	Status() recommend.Status
}

// SnapshotServiceConfig holds the reload schedule.
type SnapshotServiceConfig struct {
	// ReloadInterval is how often to rebuild from disk. Zero means
	// load once at startup and never reload.
	ReloadInterval time.Duration

	// RetryDelay is the wait between failed startup loads.
	RetryDelay time.Duration

	// BuildTimeout bounds a single rebuild.
	BuildTimeout time.Duration
}

// SnapshotService loads the dataset snapshot at startup and rebuilds
// it on the configured interval. A failed reload keeps the previous
// snapshot serving; the failure is logged and counted, never fatal
// once the first load has succeeded.
type SnapshotService struct {
	engine SnapshotEngine
	config SnapshotServiceConfig
	logger zerolog.Logger
}

// NewSnapshotService creates the snapshot loader service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(engine SnapshotEngine, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = time.Minute
	}
	return &SnapshotService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "snapshot").Logger(),
	}
}

// Serve implements suture.Service. The startup load retries until it
// succeeds; scheduled reloads run until the context is canceled.
func (s *SnapshotService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("snapshot service starting")

	for {
		if err := s.rebuild(ctx); err == nil {
			break
		} else {
			s.logger.Warn().Err(err).
				Dur("retry_delay", s.config.RetryDelay).
				Msg("startup snapshot load failed, retrying")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.RetryDelay):
		}
	}

	if s.config.ReloadInterval <= 0 {
		s.logger.Info().Msg("periodic reloads disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.rebuild(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled reload failed, keeping previous snapshot")
			}
		}
	}
}

// rebuild runs one build attempt and records its metrics.
func (s *SnapshotService) rebuild(ctx context.Context) error {
	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	start := time.Now()
	err := s.engine.Rebuild(buildCtx)
	status := s.engine.Status()
	metrics.RecordSnapshotBuild(
		time.Since(start),
		int64(status.SnapshotVersion),
		status.UserCount,
		status.ProductCount,
		status.UnknownEventCount,
		err,
	)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("snapshot_version", status.SnapshotVersion).
		Int("users", status.UserCount).
		Int("products", status.ProductCount).
		Int("interactions", status.InteractionCount).
		Dur("duration", time.Since(start)).
		Msg("snapshot built")
	return nil
}

// String identifies the service in supervisor logs.
func (s *SnapshotService) String() string {
	return "snapshot-loader"
}

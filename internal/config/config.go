// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package config loads service configuration with layered precedence:
// built-in defaults, then an optional YAML file, then environment
// variables. Koanf v2 provides the layering.
package config

import (
	"fmt"
	"time"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// Timeout bounds request read and write time.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatasetConfig holds CSV dataset settings.
type DatasetConfig struct {
	// Dir is the directory containing users.csv, products.csv and
	// interactions.csv.
	Dir string `koanf:"dir"`

	// ReloadInterval is how often the snapshot is rebuilt from disk.
	// Zero disables periodic reloads; the startup load still runs.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// RecommendConfig holds scoring parameters.
type RecommendConfig struct {
	// SimilarityWeight and PopularityWeight blend the two warm-path
	// signals. They must sum to 1.
	SimilarityWeight float64 `koanf:"similarity_weight"`
	PopularityWeight float64 `koanf:"popularity_weight"`

	// DefaultK is the result count when a request omits k.
	DefaultK int `koanf:"default_k"`

	// MaxK caps the requested result count.
	MaxK int `koanf:"max_k"`

	// EventWeights overrides the built-in interaction weights.
	// Missing kinds keep their defaults.
	EventWeights map[string]float64 `koanf:"event_weights"`
}

// RateLimitConfig holds API rate limiting settings.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained per-client rate.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// Burst is the per-client burst allowance.
	Burst int `koanf:"burst"`

	// Disabled turns rate limiting off entirely.
	Disabled bool `koanf:"disabled"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the
// config file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Dir:            "data",
			ReloadInterval: 0,
		},
		Recommend: RecommendConfig{
			SimilarityWeight: 0.7,
			PopularityWeight: 0.3,
			DefaultK:         5,
			MaxK:             100,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Dataset.Dir == "" {
		return fmt.Errorf("dataset.dir must not be empty")
	}
	if c.Dataset.ReloadInterval < 0 {
		return fmt.Errorf("dataset.reload_interval must not be negative, got %s", c.Dataset.ReloadInterval)
	}
	if !c.RateLimit.Disabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be positive, got %g", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst)
		}
	}
	// Scoring parameters share the engine's validation.
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// EngineConfig converts the recommend section into the engine's own
// configuration type.
func (c *Config) EngineConfig() *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	engineCfg.Blend.Similarity = c.Recommend.SimilarityWeight
	engineCfg.Blend.Popularity = c.Recommend.PopularityWeight
	engineCfg.Limits.DefaultK = c.Recommend.DefaultK
	engineCfg.Limits.MaxK = c.Recommend.MaxK
	for kind, weight := range c.Recommend.EventWeights {
		engineCfg.EventWeights[recommend.EventType(kind)] = weight
	}
	return engineCfg
}

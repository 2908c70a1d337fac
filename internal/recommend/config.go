// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"fmt"
	"math"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend defines the hybrid score composition.
	Blend BlendWeights `json:"blend"`

	// EventWeights maps interaction kinds to weights. Kinds outside
	// the table weigh 0. Defaults to view=1, click=2, add_to_cart=3,
	// purchase=5.
	EventWeights EventWeights `json:"event_weights"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`
}

// BlendWeights defines the relative contribution of profile similarity
// and normalized popularity to the final score. The weights must sum
// to 1 so scores stay comparable across configurations.
type BlendWeights struct {
	// Similarity is the weight of the profile-cosine component.
	Similarity float64 `json:"similarity"`

	// Popularity is the weight of the normalized-popularity component.
	Popularity float64 `json:"popularity"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the result count used when a request does not
	// specify one.
	DefaultK int `json:"default_k"`

	// MaxK caps the result count per request.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns the default engine configuration:
// 70% similarity, 30% popularity, standard event weights.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendWeights{
			Similarity: 0.7,
			Popularity: 0.3,
		},
		EventWeights: DefaultEventWeights(),
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     100,
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Blend.Similarity < 0 || c.Blend.Popularity < 0 {
		return fmt.Errorf("blend weights must be non-negative, got similarity=%f popularity=%f",
			c.Blend.Similarity, c.Blend.Popularity)
	}
	if sum := c.Blend.Similarity + c.Blend.Popularity; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("blend weights must sum to 1.0, got %f", sum)
	}
	for kind, w := range c.EventWeights {
		if w < 0 {
			return fmt.Errorf("event weight for %q must be non-negative, got %f", kind, w)
		}
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("default_k must be >= 1, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("max_k must be >= default_k, got max_k=%d default_k=%d",
			c.Limits.MaxK, c.Limits.DefaultK)
	}
	return nil
}

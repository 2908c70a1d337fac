// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine errors.
var (
	// ErrNotReady indicates no snapshot has been built yet.
	ErrNotReady = errors.New("recommendation engine has no snapshot")

	// ErrNoProvider indicates Rebuild was called without a data provider.
	ErrNoProvider = errors.New("no data provider configured")
)

// Engine owns the catalog snapshot and produces hybrid recommendations.
// It is safe for concurrent use: scoring reads an immutable snapshot
// through an atomic pointer, and Rebuild swaps in a complete new
// snapshot in one step. Requests in flight keep scoring against the
// snapshot they started with.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	snapshot atomic.Pointer[Snapshot]
	version  atomic.Int64

	// Metrics
	requestCount   atomic.Int64
	coldStartCount atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDataProvider sets the dataset source used by Rebuild.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.provider = dp
}

// Rebuild loads the three datasets from the provider, builds a fresh
// snapshot (aggregates and vector space run off the same raw tables)
// and atomically replaces the previous one. On any error the previous
// snapshot stays in place.
func (e *Engine) Rebuild(ctx context.Context) error {
	if e.provider == nil {
		return ErrNoProvider
	}

	start := time.Now()

	users, err := e.provider.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	products, err := e.provider.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	interactions, err := e.provider.GetInteractions(ctx)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}

	snap, err := BuildSnapshot(users, products, interactions, e.config.EventWeights)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}
	snap.Version = int(e.version.Add(1))

	e.snapshot.Store(snap)

	e.logger.Info().
		Int("version", snap.Version).
		Int("users", len(users)).
		Int("products", len(products)).
		Int("interactions", len(interactions)).
		Int("vocabulary", snap.Space.Dim).
		Int("unknown_events", snap.Aggregates.UnknownEvents).
		Dur("duration", time.Since(start)).
		Msg("snapshot built")

	return nil
}

// Snapshot returns the current snapshot, nil before the first build.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a snapshot is available.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Recommend scores the catalog for a user and returns the top k
// candidates ordered by score descending.
//
// With a profile (warm mode) the score blends profile-cosine with
// popularity normalized over the post-exclusion candidate set, and
// every product the user has purchased is excluded outright. Without a
// profile (cold start: no interactions, or none matching the current
// catalog, which includes unknown user IDs) the ranking is normalized
// popularity over the full catalog.
//
// k values below 1 fall back to the configured default; values above
// the configured maximum are capped. Validation that rejects bad
// requests outright belongs to the API layer.
func (e *Engine) Recommend(ctx context.Context, userID, k int) (*Response, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	e.requestCount.Add(1)

	if k < 1 {
		k = e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}

	mode := ModeWarm
	profile, ok := BuildProfile(userID, snap.Aggregates, snap.Space)
	if !ok {
		mode = ModeColdStart
		e.coldStartCount.Add(1)
	}

	var items []ScoredProduct
	if mode == ModeWarm {
		items = e.scoreWarm(snap, userID, profile)
	} else {
		items = e.scoreColdStart(snap)
	}

	total := len(items)
	sortByScore(items)
	if len(items) > k {
		items = items[:k]
	}

	e.logger.Debug().
		Int("user_id", userID).
		Str("mode", string(mode)).
		Int("k", k).
		Int("candidates", total).
		Int("returned", len(items)).
		Msg("recommendation complete")

	return &Response{
		UserID:          userID,
		Mode:            mode,
		Items:           items,
		TotalCandidates: total,
		SnapshotVersion: snap.Version,
		LatencyMS:       time.Since(start).Milliseconds(),
	}, nil
}

// scoreWarm scores every non-purchased catalog product as
// blend.Similarity * cosine + blend.Popularity * normalized popularity.
// The popularity maximum is taken over the candidates that survive
// purchase exclusion, not the full catalog.
func (e *Engine) scoreWarm(snap *Snapshot, userID int, profile Vector) []ScoredProduct {
	candidates := make([]ScoredProduct, 0, len(snap.Products))

	var maxPop float64
	for _, p := range snap.Products {
		if snap.Aggregates.HasPurchased(userID, p.ID) {
			continue
		}
		if pop := snap.Aggregates.PopularityOf(p.ID); pop > maxPop {
			maxPop = pop
		}
		candidates = append(candidates, ScoredProduct{Product: p})
	}
	if maxPop == 0 {
		maxPop = 1
	}

	for i := range candidates {
		p := &candidates[i]
		row := snap.Space.Index[p.Product.ID]
		p.Similarity = CosineSimilarity(profile, snap.Space.Vectors[row])
		p.Popularity = snap.Aggregates.PopularityOf(p.Product.ID) / maxPop
		p.Score = e.config.Blend.Similarity*p.Similarity +
			e.config.Blend.Popularity*p.Popularity
	}

	return candidates
}

// scoreColdStart ranks the full catalog by normalized popularity.
func (e *Engine) scoreColdStart(snap *Snapshot) []ScoredProduct {
	var maxPop float64
	for _, p := range snap.Products {
		if pop := snap.Aggregates.PopularityOf(p.ID); pop > maxPop {
			maxPop = pop
		}
	}
	if maxPop == 0 {
		maxPop = 1
	}

	candidates := make([]ScoredProduct, len(snap.Products))
	for i, p := range snap.Products {
		pop := snap.Aggregates.PopularityOf(p.ID) / maxPop
		candidates[i] = ScoredProduct{
			Product:    p,
			Popularity: pop,
			Score:      pop,
		}
	}

	return candidates
}

// sortByScore orders candidates by score descending with an explicit
// tie-break on product ID ascending, so equal scores rank the same way
// regardless of catalog iteration order.
func sortByScore(items []ScoredProduct) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Product.ID < items[j].Product.ID
	})
}

// Status returns engine state for health and status endpoints.
func (e *Engine) Status() Status {
	st := Status{
		RequestCount:   e.requestCount.Load(),
		ColdStartCount: e.coldStartCount.Load(),
	}

	snap := e.snapshot.Load()
	if snap == nil {
		return st
	}

	st.Ready = true
	st.SnapshotVersion = snap.Version
	st.BuiltAt = snap.BuiltAt
	st.UserCount = len(snap.UserList)
	st.ProductCount = len(snap.Products)
	st.InteractionCount = len(snap.Interactions)
	st.VocabularySize = snap.Space.Dim
	st.UnknownEventCount = snap.Aggregates.UnknownEvents
	return st
}

// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package recommend implements the hybrid product recommendation engine.
//
// The engine combines content similarity with global popularity:
//
//  1. The interaction aggregator converts raw events into per-product
//     popularity and per-(user,product) accumulated weights
//     (aggregate.go).
//  2. The catalog vectorizer builds a shared TF-IDF vector space over
//     the product catalog, one L2-normalized vector per product
//     (vectorizer.go).
//  3. The profile builder derives a per-user interest vector as the
//     weighted centroid of interacted product vectors (profile.go).
//  4. The hybrid ranker blends profile-cosine with normalized
//     popularity, excludes purchased products, and returns the top K
//     by score (engine.go).
//
// Users without a usable profile receive a popularity-only cold-start
// ranking.
//
// # Snapshot Model
//
// All derived state lives in an immutable Snapshot built once per
// dataset load (snapshot.go). The engine publishes snapshots through an
// atomic pointer: readers never lock, and a reload is an atomic swap of
// the entire snapshot. Nothing is persisted across restarts; vectors
// and scores are recomputed from the raw tables on every build.
//
// # Error Model
//
// The engine degrades rather than fails on data irregularities:
// unknown event kinds weigh 0 (but are counted), interactions
// referencing unknown users or products are skipped where consumed,
// and a catalog with zero total popularity normalizes to 0 instead of
// dividing by zero. Only a malformed source dataset (at load) and
// invalid request parameters (at the API layer) surface as errors.
package recommend

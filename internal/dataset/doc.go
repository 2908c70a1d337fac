// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package dataset loads the three read-only tabular datasets the
// recommendation engine consumes: users, products and interactions,
// stored as CSV flat files in a single data directory.
//
// The loader is the engine's DataProvider; it owns all file-format
// knowledge and performs the one explicit normalization pass over raw
// values (missing text becomes an empty string, a missing price or
// timestamp becomes the zero value). Anything structurally wrong with
// a file is a load error, so the engine itself never sees malformed
// input.
package dataset

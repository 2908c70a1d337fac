// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package models defines the shared API response envelope used by all
// HTTP endpoints.
package models

import (
	"time"
)

// APIResponse is the standard wrapper for every API response, success
// or error.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
//	{
//	  "status": "success",
//	  "data": {"user_id": 7, "mode": "warm", "items": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 2}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`

	// SnapshotVersion identifies the dataset snapshot that produced
	// the response, for correlating results across reloads.
	SnapshotVersion int64 `json:"snapshot_version,omitempty"`
}

// APIError is the structured error body.
//
// Common codes:
//   - VALIDATION_ERROR: invalid request parameters
//   - NOT_FOUND: resource does not exist
//   - NOT_READY: no dataset snapshot has been loaded yet
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

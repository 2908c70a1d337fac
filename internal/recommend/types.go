// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"context"
	"time"
)

// EventType classifies user-product interaction events.
//
// The four recognized kinds carry fixed positive weights. Kinds outside
// this set are tolerated (they may come from newer interaction logs)
// and contribute weight 0; they are counted rather than discarded so
// bad data stays observable.
type EventType string

const (
	// EventView indicates the user viewed a product page.
	EventView EventType = "view"
	// EventClick indicates the user clicked through to a product.
	EventClick EventType = "click"
	// EventAddToCart indicates the user added a product to their cart.
	EventAddToCart EventType = "add_to_cart"
	// EventPurchase indicates the user bought the product.
	EventPurchase EventType = "purchase"
)

// Known reports whether the event kind is one of the four recognized kinds.
func (t EventType) Known() bool {
	switch t {
	case EventView, EventClick, EventAddToCart, EventPurchase:
		return true
	default:
		return false
	}
}

// EventWeights maps event kinds to interaction weights.
// Unmapped kinds weigh 0.
type EventWeights map[EventType]float64

// DefaultEventWeights returns the standard weight table:
// view=1, click=2, add_to_cart=3, purchase=5.
func DefaultEventWeights() EventWeights {
	return EventWeights{
		EventView:      1,
		EventClick:     2,
		EventAddToCart: 3,
		EventPurchase:  5,
	}
}

// Weight returns the weight for an event kind, 0 for unmapped kinds.
func (w EventWeights) Weight(t EventType) float64 {
	return w[t]
}

// User represents a catalog user. Immutable after load.
type User struct {
	// ID is the unique user identifier.
	ID int `json:"user_id"`

	// Name is the display name.
	Name string `json:"name"`
}

// Product represents a catalog product. Immutable after catalog load
// for the lifetime of one scoring session.
type Product struct {
	// ID is the unique, stable product identifier.
	ID int `json:"product_id"`

	// Name is the product name.
	Name string `json:"name"`

	// Category is the product category.
	Category string `json:"category"`

	// Brand is the product brand.
	Brand string `json:"brand"`

	// Price is the list price. Non-negative.
	Price float64 `json:"price"`

	// Tags is a free-text tag field. May be empty.
	Tags string `json:"tags"`
}

// Document returns the text treated as one TF-IDF document for the
// product: name, category, brand and tags joined by single spaces.
// Missing fields have already been normalized to empty strings at load.
func (p Product) Document() string {
	return p.Name + " " + p.Category + " " + p.Brand + " " + p.Tags
}

// Interaction represents a single user-product interaction event.
type Interaction struct {
	// UserID is the interacting user. May reference a since-removed user.
	UserID int `json:"user_id"`

	// ProductID is the interacted product. May reference a since-removed
	// product; consumers filter unknown identifiers as a silent no-op.
	ProductID int `json:"product_id"`

	// Event is the interaction kind. Unknown kinds are tolerated.
	Event EventType `json:"event_type"`

	// Timestamp is when the interaction occurred. Used for explanation
	// ordering only, never by the scoring math.
	Timestamp time.Time `json:"timestamp"`
}

// ScoredProduct is a ranked recommendation candidate.
type ScoredProduct struct {
	// Product is the recommended product.
	Product Product `json:"product"`

	// Score is the final hybrid score. Higher is better.
	Score float64 `json:"score"`

	// Similarity is the profile-cosine component. Zero in cold-start mode.
	Similarity float64 `json:"similarity,omitempty"`

	// Popularity is the normalized-popularity component.
	Popularity float64 `json:"popularity,omitempty"`

	// Reason is an interpretable explanation for the recommendation.
	Reason string `json:"reason,omitempty"`
}

// Mode identifies the scoring mode used for a response.
type Mode string

const (
	// ModeWarm blends profile similarity with normalized popularity.
	ModeWarm Mode = "warm"
	// ModeColdStart ranks by normalized popularity only.
	ModeColdStart Mode = "cold_start"
)

// Response is the result of one recommendation request.
type Response struct {
	// UserID is the user the recommendations are for.
	UserID int `json:"user_id"`

	// Mode is the scoring mode that produced the ranking.
	Mode Mode `json:"mode"`

	// Items is the ordered recommendation list, best first.
	Items []ScoredProduct `json:"items"`

	// TotalCandidates is the number of products scored after exclusion.
	TotalCandidates int `json:"total_candidates"`

	// SnapshotVersion identifies the snapshot that served the request.
	SnapshotVersion int `json:"snapshot_version"`

	// LatencyMS is the scoring latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`
}

// Status reports engine state for the status endpoint and health checks.
type Status struct {
	// Ready indicates whether a snapshot has been built.
	Ready bool `json:"ready"`

	// SnapshotVersion is the current snapshot version, 0 before first build.
	SnapshotVersion int `json:"snapshot_version"`

	// BuiltAt is when the current snapshot was built.
	BuiltAt time.Time `json:"built_at"`

	// UserCount is the number of users in the snapshot.
	UserCount int `json:"user_count"`

	// ProductCount is the number of catalog products.
	ProductCount int `json:"product_count"`

	// InteractionCount is the number of interaction records.
	InteractionCount int `json:"interaction_count"`

	// VocabularySize is the TF-IDF vector dimensionality.
	VocabularySize int `json:"vocabulary_size"`

	// UnknownEventCount is the number of interactions whose event kind
	// was outside the recognized set and therefore weighed 0.
	UnknownEventCount int `json:"unknown_event_count"`

	// RequestCount is the total number of recommendation requests served.
	RequestCount int64 `json:"request_count"`

	// ColdStartCount is the number of requests served in cold-start mode.
	ColdStartCount int64 `json:"cold_start_count"`
}

// DataProvider supplies the three read-only datasets the engine
// consumes. This is typically implemented by the dataset loader; the
// interface keeps the engine free of any file-format knowledge.
type DataProvider interface {
	// GetUsers returns the user table.
	GetUsers(ctx context.Context) ([]User, error)

	// GetProducts returns the product catalog in load order.
	GetProducts(ctx context.Context) ([]Product, error)

	// GetInteractions returns the full interaction table.
	GetInteractions(ctx context.Context) ([]Interaction, error)
}

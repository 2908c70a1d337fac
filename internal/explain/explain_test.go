// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package explain

import (
	"strings"
	"testing"
	"time"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

func testSnapshot(t *testing.T) *recommend.Snapshot {
	t.Helper()

	users := []recommend.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
	products := []recommend.Product{
		{ID: 10, Name: "Trail Runner", Category: "Footwear", Brand: "Peak", Tags: "running trail"},
		{ID: 20, Name: "Road Runner", Category: "Footwear", Brand: "Peak", Tags: "running road"},
		{ID: 30, Name: "Espresso Maker", Category: "Kitchen", Brand: "Brewline", Tags: "coffee espresso"},
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	interactions := []recommend.Interaction{
		{UserID: 1, ProductID: 10, Event: recommend.EventPurchase, Timestamp: base},
		{UserID: 1, ProductID: 30, Event: recommend.EventView, Timestamp: base.Add(time.Hour)},
	}

	snap, err := recommend.BuildSnapshot(users, products, interactions, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	return snap
}

func TestBehaviorSummary(t *testing.T) {
	snap := testSnapshot(t)
	gen := NewGenerator()

	summary := gen.BehaviorSummary(snap, 1)
	if !strings.HasPrefix(summary, "Alice recently interacted") {
		t.Errorf("summary should open with the user's name, got %q", summary)
	}
	// Newest first: the espresso view precedes the shoe purchase.
	espresso := strings.Index(summary, "Espresso Maker")
	runner := strings.Index(summary, "Trail Runner")
	if espresso < 0 || runner < 0 {
		t.Fatalf("summary missing products: %q", summary)
	}
	if espresso > runner {
		t.Errorf("expected newest interaction first, got %q", summary)
	}
	if !strings.Contains(summary, "via purchase") || !strings.Contains(summary, "via view") {
		t.Errorf("summary should name the event kinds, got %q", summary)
	}
}

func TestBehaviorSummaryNewUser(t *testing.T) {
	snap := testSnapshot(t)
	gen := NewGenerator()

	summary := gen.BehaviorSummary(snap, 2)
	if summary != "Bob is a new user with no previous activity." {
		t.Errorf("unexpected new-user summary: %q", summary)
	}
}

func TestBehaviorSummaryUnknownUser(t *testing.T) {
	snap := testSnapshot(t)
	gen := NewGenerator()

	summary := gen.BehaviorSummary(snap, 99)
	if !strings.HasPrefix(summary, "User 99") {
		t.Errorf("unknown users fall back to their identifier, got %q", summary)
	}
}

func TestReason(t *testing.T) {
	snap := testSnapshot(t)
	gen := NewGenerator()

	tests := []struct {
		name    string
		userID  int
		item    recommend.ScoredProduct
		mode    recommend.Mode
		contain string
	}{
		{
			name:    "warm category and brand match",
			userID:  1,
			item:    recommend.ScoredProduct{Product: mustProduct(t, snap, 20)},
			mode:    recommend.ModeWarm,
			contain: "Footwear products from Peak",
		},
		{
			name:    "cold start popular",
			userID:  2,
			item:    recommend.ScoredProduct{Product: mustProduct(t, snap, 10), Popularity: 5},
			mode:    recommend.ModeColdStart,
			contain: "popular with other shoppers",
		},
		{
			name:    "cold start unexplored",
			userID:  2,
			item:    recommend.ScoredProduct{Product: mustProduct(t, snap, 20), Popularity: 0},
			mode:    recommend.ModeColdStart,
			contain: "haven't explored yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.Reason(snap, tt.userID, tt.item, tt.mode)
			if !strings.Contains(got, tt.contain) {
				t.Errorf("Reason() = %q, want substring %q", got, tt.contain)
			}
		})
	}
}

func TestReasonDeterministic(t *testing.T) {
	snap := testSnapshot(t)
	gen := NewGenerator()
	item := recommend.ScoredProduct{Product: mustProduct(t, snap, 20)}

	first := gen.Reason(snap, 1, item, recommend.ModeWarm)
	for i := 0; i < 5; i++ {
		if got := gen.Reason(snap, 1, item, recommend.ModeWarm); got != first {
			t.Fatalf("Reason() not deterministic: %q vs %q", got, first)
		}
	}
}

func mustProduct(t *testing.T, snap *recommend.Snapshot, id int) recommend.Product {
	t.Helper()
	p, ok := snap.ProductByID(id)
	if !ok {
		t.Fatalf("product %d missing from snapshot", id)
	}
	return p
}

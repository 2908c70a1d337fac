// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"math"
	"testing"
)

func TestBuildAggregates_Popularity(t *testing.T) {
	tests := []struct {
		name         string
		interactions []Interaction
		wantPop      map[int]float64
		wantUnknown  int
	}{
		{
			name:         "empty interactions",
			interactions: nil,
			wantPop:      map[int]float64{},
		},
		{
			name: "popularity is sum of event weights",
			interactions: []Interaction{
				{UserID: 1, ProductID: 10, Event: EventView},
				{UserID: 2, ProductID: 10, Event: EventClick},
				{UserID: 1, ProductID: 10, Event: EventPurchase},
				{UserID: 1, ProductID: 11, Event: EventAddToCart},
			},
			wantPop: map[int]float64{10: 8, 11: 3},
		},
		{
			name: "unknown kinds weigh zero but the product still appears",
			interactions: []Interaction{
				{UserID: 1, ProductID: 10, Event: EventType("wishlist")},
			},
			wantPop:     map[int]float64{10: 0},
			wantUnknown: 1,
		},
		{
			name: "unknown kinds do not disturb known weights",
			interactions: []Interaction{
				{UserID: 1, ProductID: 10, Event: EventView},
				{UserID: 1, ProductID: 10, Event: EventType("wishlist")},
				{UserID: 1, ProductID: 10, Event: EventType("share")},
			},
			wantPop:     map[int]float64{10: 1},
			wantUnknown: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := BuildAggregates(tt.interactions, DefaultEventWeights())

			if len(agg.Popularity) != len(tt.wantPop) {
				t.Errorf("popularity has %d products, want %d", len(agg.Popularity), len(tt.wantPop))
			}
			for id, want := range tt.wantPop {
				if got := agg.PopularityOf(id); got != want {
					t.Errorf("PopularityOf(%d) = %f, want %f", id, got, want)
				}
			}
			if agg.UnknownEvents != tt.wantUnknown {
				t.Errorf("UnknownEvents = %d, want %d", agg.UnknownEvents, tt.wantUnknown)
			}
		})
	}
}

func TestBuildAggregates_UserWeights(t *testing.T) {
	interactions := []Interaction{
		{UserID: 1, ProductID: 10, Event: EventView},
		{UserID: 1, ProductID: 10, Event: EventView},
		{UserID: 1, ProductID: 10, Event: EventClick},
		{UserID: 1, ProductID: 11, Event: EventPurchase},
		{UserID: 2, ProductID: 10, Event: EventAddToCart},
	}

	agg := BuildAggregates(interactions, DefaultEventWeights())

	// Repeated interactions accumulate by summation.
	if got := agg.WeightsFor(1)[10]; got != 4 {
		t.Errorf("user 1 weight for product 10 = %f, want 4", got)
	}
	if got := agg.WeightsFor(1)[11]; got != 5 {
		t.Errorf("user 1 weight for product 11 = %f, want 5", got)
	}
	if got := agg.WeightsFor(2)[10]; got != 3 {
		t.Errorf("user 2 weight for product 10 = %f, want 3", got)
	}
	if agg.WeightsFor(99) != nil {
		t.Error("WeightsFor(99) should be nil for a user with no interactions")
	}
}

func TestBuildAggregates_Purchased(t *testing.T) {
	interactions := []Interaction{
		{UserID: 1, ProductID: 10, Event: EventPurchase},
		{UserID: 1, ProductID: 11, Event: EventView},
		{UserID: 2, ProductID: 11, Event: EventAddToCart},
	}

	agg := BuildAggregates(interactions, DefaultEventWeights())

	if !agg.HasPurchased(1, 10) {
		t.Error("HasPurchased(1, 10) = false, want true")
	}
	if agg.HasPurchased(1, 11) {
		t.Error("HasPurchased(1, 11) = true for a view-only product")
	}
	if agg.HasPurchased(2, 11) {
		t.Error("HasPurchased(2, 11) = true, add_to_cart is not a purchase")
	}
	if agg.HasPurchased(3, 10) {
		t.Error("HasPurchased for an unknown user should be false")
	}
}

func TestBuildAggregates_OrphanInteractionsKept(t *testing.T) {
	// Interactions referencing since-removed users or products are not
	// dropped by the aggregator; consumers filter them later.
	interactions := []Interaction{
		{UserID: 999, ProductID: 888, Event: EventPurchase},
	}

	agg := BuildAggregates(interactions, DefaultEventWeights())

	if got := agg.PopularityOf(888); got != 5 {
		t.Errorf("PopularityOf(888) = %f, want 5", got)
	}
	if got := agg.WeightsFor(999)[888]; got != 5 {
		t.Errorf("orphan user weight = %f, want 5", got)
	}
}

func TestEventWeights(t *testing.T) {
	weights := DefaultEventWeights()

	tests := []struct {
		event EventType
		want  float64
	}{
		{EventView, 1},
		{EventClick, 2},
		{EventAddToCart, 3},
		{EventPurchase, 5},
		{EventType("wishlist"), 0},
		{EventType(""), 0},
	}

	for _, tt := range tests {
		if got := weights.Weight(tt.event); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Weight(%q) = %f, want %f", tt.event, got, tt.want)
		}
	}

	if EventType("wishlist").Known() {
		t.Error(`EventType("wishlist").Known() = true, want false`)
	}
	if !EventPurchase.Known() {
		t.Error("EventPurchase.Known() = false, want true")
	}
}

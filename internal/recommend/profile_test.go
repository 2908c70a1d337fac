// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"math"
	"testing"
)

// testCatalog returns a small catalog with two disjoint text clusters
// (footwear and kitchen) so cosine relationships are predictable.
func testCatalog() []Product {
	return []Product{
		{ID: 10, Name: "Trail Shoes", Category: "Footwear", Brand: "Acme"},
		{ID: 20, Name: "Road Shoes", Category: "Footwear", Brand: "Acme"},
		{ID: 30, Name: "Espresso Maker", Category: "Kitchen", Brand: "Brewco"},
	}
}

func TestBuildProfile_WeightedCentroid(t *testing.T) {
	space := BuildVectorSpace(testCatalog())
	agg := BuildAggregates([]Interaction{
		{UserID: 1, ProductID: 10, Event: EventPurchase}, // weight 5
		{UserID: 1, ProductID: 30, Event: EventView},     // weight 1
	}, DefaultEventWeights())

	profile, ok := BuildProfile(1, agg, space)
	if !ok {
		t.Fatal("BuildProfile() ok = false, want profile")
	}

	// profile = (5*v10 + 1*v30) / 6, dimension by dimension.
	v10, _ := space.VectorFor(10)
	v30, _ := space.VectorFor(30)
	want := make(Vector)
	for dim, w := range v10 {
		want[dim] += 5 * w / 6
	}
	for dim, w := range v30 {
		want[dim] += 1 * w / 6
	}

	if len(profile) != len(want) {
		t.Fatalf("profile has %d dims, want %d", len(profile), len(want))
	}
	for dim, w := range want {
		if math.Abs(profile[dim]-w) > 1e-9 {
			t.Errorf("profile[%d] = %f, want %f", dim, profile[dim], w)
		}
	}
}

func TestBuildProfile_ScaleInvariance(t *testing.T) {
	// Scaling all of a user's weights by the same positive constant
	// leaves the weighted average unchanged. User 2 has every
	// interaction of user 1 three times over.
	base := []Interaction{
		{UserID: 1, ProductID: 10, Event: EventClick},
		{UserID: 1, ProductID: 30, Event: EventView},
	}
	var tripled []Interaction
	tripled = append(tripled, base...)
	for i := 0; i < 3; i++ {
		for _, inter := range base {
			inter.UserID = 2
			tripled = append(tripled, inter)
		}
	}

	space := BuildVectorSpace(testCatalog())
	agg := BuildAggregates(tripled, DefaultEventWeights())

	p1, ok1 := BuildProfile(1, agg, space)
	p2, ok2 := BuildProfile(2, agg, space)
	if !ok1 || !ok2 {
		t.Fatal("expected profiles for both users")
	}

	if len(p1) != len(p2) {
		t.Fatalf("profiles differ in dimensionality: %d vs %d", len(p1), len(p2))
	}
	for dim, w := range p1 {
		if math.Abs(p2[dim]-w) > 1e-9 {
			t.Errorf("profile[%d]: %f vs %f, want equal under weight scaling", dim, w, p2[dim])
		}
	}
}

func TestBuildProfile_ColdStart(t *testing.T) {
	space := BuildVectorSpace(testCatalog())

	tests := []struct {
		name         string
		interactions []Interaction
	}{
		{
			name:         "no interactions at all",
			interactions: nil,
		},
		{
			name: "only products absent from the catalog",
			interactions: []Interaction{
				{UserID: 1, ProductID: 777, Event: EventPurchase},
				{UserID: 1, ProductID: 888, Event: EventClick},
			},
		},
		{
			name: "only zero-weight unknown kinds",
			interactions: []Interaction{
				{UserID: 1, ProductID: 10, Event: EventType("wishlist")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := BuildAggregates(tt.interactions, DefaultEventWeights())
			if profile, ok := BuildProfile(1, agg, space); ok {
				t.Errorf("BuildProfile() = %v, want no profile", profile)
			}
		})
	}
}

func TestBuildProfile_SkipsCatalogDrift(t *testing.T) {
	// A removed product contributes neither vector nor weight to the
	// centroid; the remaining product fully determines the profile.
	space := BuildVectorSpace(testCatalog())
	agg := BuildAggregates([]Interaction{
		{UserID: 1, ProductID: 10, Event: EventView},
		{UserID: 1, ProductID: 777, Event: EventPurchase}, // not in catalog
	}, DefaultEventWeights())

	profile, ok := BuildProfile(1, agg, space)
	if !ok {
		t.Fatal("BuildProfile() ok = false, want profile")
	}

	v10, _ := space.VectorFor(10)
	if sim := CosineSimilarity(profile, v10); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("cosine(profile, v10) = %f, want 1.0", sim)
	}
}

// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"testing"
	"time"
)

func TestBuildSnapshot(t *testing.T) {
	users := []User{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Bo"}}
	products := []Product{
		{ID: 10, Name: "Trail Shoes", Category: "Footwear", Brand: "Acme"},
		{ID: 20, Name: "Espresso Maker", Category: "Kitchen", Brand: "Brewco"},
	}
	interactions := []Interaction{
		{UserID: 1, ProductID: 10, Event: EventView, Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{UserID: 1, ProductID: 20, Event: EventClick, Timestamp: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{UserID: 2, ProductID: 10, Event: EventPurchase, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	snap, err := BuildSnapshot(users, products, interactions, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if !snap.UserExists(1) || !snap.UserExists(2) {
		t.Error("loaded users missing from user table")
	}
	if snap.UserExists(99) {
		t.Error("UserExists(99) = true for an unknown user")
	}

	if p, ok := snap.ProductByID(20); !ok || p.Name != "Espresso Maker" {
		t.Errorf("ProductByID(20) = %+v (ok=%v)", p, ok)
	}
	if _, ok := snap.ProductByID(77); ok {
		t.Error("ProductByID(77) = ok for a product outside the catalog")
	}

	// Interactions are ordered newest first for the explainer.
	if snap.Interactions[0].ProductID != 20 {
		t.Errorf("newest interaction product = %d, want 20", snap.Interactions[0].ProductID)
	}
	if snap.BuiltAt.IsZero() {
		t.Error("BuiltAt is zero")
	}
}

func TestBuildSnapshot_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name     string
		users    []User
		products []Product
	}{
		{
			name:     "duplicate user id",
			users:    []User{{ID: 1, Name: "Ada"}, {ID: 1, Name: "Imposter"}},
			products: []Product{{ID: 10, Name: "Widget"}},
		},
		{
			name:     "duplicate product id",
			users:    []User{{ID: 1, Name: "Ada"}},
			products: []Product{{ID: 10, Name: "Widget"}, {ID: 10, Name: "Widget Again"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSnapshot(tt.users, tt.products, nil, nil); err == nil {
				t.Error("BuildSnapshot() should reject duplicate identifiers")
			}
		})
	}
}

func TestSnapshot_RecentInteractions(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}
	interactions := []Interaction{
		{UserID: 1, ProductID: 10, Event: EventView, Timestamp: day(1)},
		{UserID: 1, ProductID: 20, Event: EventView, Timestamp: day(3)},
		{UserID: 2, ProductID: 30, Event: EventView, Timestamp: day(4)},
		{UserID: 1, ProductID: 30, Event: EventClick, Timestamp: day(2)},
	}

	snap, err := BuildSnapshot(
		[]User{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Bo"}},
		[]Product{{ID: 10, Name: "A"}, {ID: 20, Name: "B"}, {ID: 30, Name: "C"}},
		interactions, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	recent := snap.RecentInteractions(1, 2)
	if len(recent) != 2 {
		t.Fatalf("got %d interactions, want 2", len(recent))
	}
	if recent[0].ProductID != 20 || recent[1].ProductID != 30 {
		t.Errorf("recent products = [%d, %d], want [20, 30]",
			recent[0].ProductID, recent[1].ProductID)
	}

	if got := snap.RecentInteractions(99, 5); got != nil {
		t.Errorf("RecentInteractions for unknown user = %v, want nil", got)
	}
}

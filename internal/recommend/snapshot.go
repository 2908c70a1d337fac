// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is the immutable, explicitly owned view of one dataset load:
// the user table, the catalog in load order, the shared vector space
// and the interaction aggregates.
//
// A snapshot is built once and never mutated. The engine replaces the
// whole snapshot atomically on reload, so scoring requests in flight
// finish against the snapshot they started with and never observe a
// partial rebuild.
type Snapshot struct {
	// Version is a monotonically increasing snapshot identifier,
	// assigned by the engine at swap time.
	Version int

	// Users maps user ID to user record.
	Users map[int]User

	// UserList holds the users in load order, for listing endpoints.
	UserList []User

	// Products holds the catalog in load order. Row i of the vector
	// space corresponds to Products[i].
	Products []Product

	// Space is the shared TF-IDF vector space over Products.
	Space *VectorSpace

	// Aggregates holds popularity and accumulated user-product weights.
	Aggregates *Aggregates

	// Interactions is the raw interaction table ordered by timestamp
	// descending. Kept for the explanation layer only; the scoring
	// math reads Aggregates exclusively.
	Interactions []Interaction

	// BuiltAt is when the snapshot was built.
	BuiltAt time.Time
}

// BuildSnapshot constructs a snapshot from the three raw tables.
//
// This is the single place where data irregularities are normalized:
// duplicate user or product identifiers are rejected (a malformed
// source dataset is the one load-time failure the engine surfaces),
// while everything downstream degrades instead of failing. Interactions
// referencing unknown users or products are kept; consumers skip them.
func BuildSnapshot(users []User, products []Product, interactions []Interaction, weights EventWeights) (*Snapshot, error) {
	userTable := make(map[int]User, len(users))
	for _, u := range users {
		if _, ok := userTable[u.ID]; ok {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		userTable[u.ID] = u
	}

	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if weights == nil {
		weights = DefaultEventWeights()
	}

	// Most recent first, for the behavior summary. Stable so records
	// sharing a timestamp keep their log order.
	ordered := make([]Interaction, len(interactions))
	copy(ordered, interactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})

	return &Snapshot{
		Users:        userTable,
		UserList:     users,
		Products:     products,
		Space:        BuildVectorSpace(products),
		Aggregates:   BuildAggregates(interactions, weights),
		Interactions: ordered,
		BuiltAt:      time.Now(),
	}, nil
}

// UserExists reports whether the user is present in the user table.
func (s *Snapshot) UserExists(userID int) bool {
	_, ok := s.Users[userID]
	return ok
}

// ProductByID returns the catalog record for a product ID.
func (s *Snapshot) ProductByID(productID int) (Product, bool) {
	row, ok := s.Space.Index[productID]
	if !ok {
		return Product{}, false
	}
	return s.Products[row], true
}

// RecentInteractions returns up to limit of the user's most recent
// interactions, newest first.
func (s *Snapshot) RecentInteractions(userID, limit int) []Interaction {
	var recent []Interaction
	for _, inter := range s.Interactions {
		if inter.UserID != userID {
			continue
		}
		recent = append(recent, inter)
		if len(recent) == limit {
			break
		}
	}
	return recent
}

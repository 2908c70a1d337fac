// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

// Aggregates holds the derived interaction tables: per-product
// popularity and per-(user,product) accumulated weights.
//
// Popularity is always recomputed fresh from the full interaction set;
// there are no incremental updates. Products referenced only by
// zero-weight (unknown-kind) interactions still appear with popularity
// 0, so a later extension of the weight table picks them up without a
// reload of the raw events.
//
// No interaction is dropped here for referencing a user or product
// absent from the current catalog snapshot. Downstream consumers
// (profile builder, ranker) filter unknown identifiers themselves and
// treat them as a silent no-op, since interaction logs may reference
// since-removed users and products.
type Aggregates struct {
	// Popularity maps product ID to the sum of interaction weights
	// referencing it. Always >= 0.
	Popularity map[int]float64

	// UserWeights maps user ID to product ID to the accumulated
	// interaction weight. Repeated interactions sum, never overwrite.
	UserWeights map[int]map[int]float64

	// Purchased maps user ID to the set of products with at least one
	// purchase-kind interaction, regardless of accumulated weight.
	Purchased map[int]map[int]struct{}

	// UnknownEvents counts interactions whose event kind was unmapped
	// and therefore contributed weight 0.
	UnknownEvents int
}

// BuildAggregates derives popularity and accumulated user-product
// weights from the full interaction table using the given weight table.
func BuildAggregates(interactions []Interaction, weights EventWeights) *Aggregates {
	agg := &Aggregates{
		Popularity:  make(map[int]float64),
		UserWeights: make(map[int]map[int]float64),
		Purchased:   make(map[int]map[int]struct{}),
	}

	for _, inter := range interactions {
		w := weights.Weight(inter.Event)
		if !inter.Event.Known() {
			agg.UnknownEvents++
		}

		// Touch the product even at weight 0 so it surfaces with
		// popularity 0 rather than disappearing entirely.
		agg.Popularity[inter.ProductID] += w

		userWeights, ok := agg.UserWeights[inter.UserID]
		if !ok {
			userWeights = make(map[int]float64)
			agg.UserWeights[inter.UserID] = userWeights
		}
		userWeights[inter.ProductID] += w

		if inter.Event == EventPurchase {
			purchased, ok := agg.Purchased[inter.UserID]
			if !ok {
				purchased = make(map[int]struct{})
				agg.Purchased[inter.UserID] = purchased
			}
			purchased[inter.ProductID] = struct{}{}
		}
	}

	return agg
}

// PopularityOf returns the popularity for a product, 0 when the product
// has no interactions.
func (a *Aggregates) PopularityOf(productID int) float64 {
	return a.Popularity[productID]
}

// WeightsFor returns the accumulated product weights for a user.
// The returned map is nil for users with no interactions.
func (a *Aggregates) WeightsFor(userID int) map[int]float64 {
	return a.UserWeights[userID]
}

// HasPurchased reports whether the user has any purchase-kind
// interaction with the product.
func (a *Aggregates) HasPurchased(userID, productID int) bool {
	purchased, ok := a.Purchased[userID]
	if !ok {
		return false
	}
	_, ok = purchased[productID]
	return ok
}

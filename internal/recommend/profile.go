// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

// BuildProfile derives a user's interest profile as the weighted
// centroid of the vectors of the products the user has interacted
// with, weighted by accumulated interaction weight:
//
//	profile = sum(weight_i * vector_i) / sum(weight_i)
//
// Products absent from the vector space are skipped (the interaction
// log may reference products removed from the catalog), as are
// products whose accumulated weight is not positive. When nothing
// remains the user has no profile and the second return is false; the
// caller falls back to cold-start ranking. A profile is never built
// from a zero weight sum.
//
// The weighted average makes the profile invariant under uniform
// scaling of a user's weights.
func BuildProfile(userID int, agg *Aggregates, space *VectorSpace) (Vector, bool) {
	weights := agg.WeightsFor(userID)
	if len(weights) == 0 {
		return nil, false
	}

	profile := make(Vector)
	var totalWeight float64

	for productID, weight := range weights {
		if weight <= 0 {
			continue
		}
		vec, ok := space.VectorFor(productID)
		if !ok {
			continue
		}
		for dim, w := range vec {
			profile[dim] += weight * w
		}
		totalWeight += weight
	}

	if totalWeight == 0 {
		return nil, false
	}

	for dim := range profile {
		profile[dim] /= totalWeight
	}

	return profile, true
}

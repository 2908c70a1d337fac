// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package explain

import (
	"fmt"
	"strings"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// DefaultHistoryLimit is how many recent interactions feed the
// behavior summary.
const DefaultHistoryLimit = 5

// Generator narrates recommendations: a per-user behavior summary and
// a per-product reason. All output is deterministic given the snapshot,
// so explanations are as reproducible as the scores they describe.
type Generator struct {
	historyLimit int
}

// NewGenerator creates an explanation generator.
func NewGenerator() *Generator {
	return &Generator{historyLimit: DefaultHistoryLimit}
}

// BehaviorSummary describes the user's recent activity: the most
// recent interactions, newest first, joined with catalog metadata.
// Interactions referencing products no longer in the catalog are
// skipped.
func (g *Generator) BehaviorSummary(snap *recommend.Snapshot, userID int) string {
	name := g.displayName(snap, userID)

	recent := g.recentProducts(snap, userID)
	if len(recent) == 0 {
		return fmt.Sprintf("%s is a new user with no previous activity.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s recently interacted with these products:", name)
	for _, r := range recent {
		fmt.Fprintf(&b, "\n- %s (%s, %s) via %s",
			r.product.Name, r.product.Category, r.product.Brand, r.event)
	}
	return b.String()
}

// Reason explains why one scored product was recommended to the user.
func (g *Generator) Reason(snap *recommend.Snapshot, userID int, item recommend.ScoredProduct, mode recommend.Mode) string {
	if mode == recommend.ModeColdStart {
		if item.Popularity > 0 {
			return fmt.Sprintf("%s is popular with other shoppers right now.", item.Product.Name)
		}
		return fmt.Sprintf("%s is part of our catalog you haven't explored yet.", item.Product.Name)
	}

	categories, brands := g.affinities(snap, userID)

	switch {
	case categories[item.Product.Category] && brands[item.Product.Brand]:
		return fmt.Sprintf("You've shown interest in %s products from %s, and %s is a close match.",
			item.Product.Category, item.Product.Brand, item.Product.Name)
	case categories[item.Product.Category]:
		return fmt.Sprintf("Based on your interest in %s, %s looks like a good fit.",
			item.Product.Category, item.Product.Name)
	case brands[item.Product.Brand] && item.Product.Brand != "":
		return fmt.Sprintf("You've engaged with %s before, and %s is one of their products.",
			item.Product.Brand, item.Product.Name)
	case item.Popularity > 0.5:
		return fmt.Sprintf("%s is trending with shoppers whose taste resembles yours.", item.Product.Name)
	default:
		return fmt.Sprintf("%s matches the kinds of products you've been browsing.", item.Product.Name)
	}
}

// displayName returns the user's name, falling back to the identifier
// for users missing from the user table.
func (g *Generator) displayName(snap *recommend.Snapshot, userID int) string {
	if u, ok := snap.Users[userID]; ok && u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("User %d", userID)
}

type recentProduct struct {
	product recommend.Product
	event   recommend.EventType
}

// recentProducts joins the user's most recent interactions with the
// catalog, newest first, dropping products no longer present.
func (g *Generator) recentProducts(snap *recommend.Snapshot, userID int) []recentProduct {
	var out []recentProduct
	for _, inter := range snap.RecentInteractions(userID, g.historyLimit*2) {
		p, ok := snap.ProductByID(inter.ProductID)
		if !ok {
			continue
		}
		out = append(out, recentProduct{product: p, event: inter.Event})
		if len(out) == g.historyLimit {
			break
		}
	}
	return out
}

// affinities collects the categories and brands of every product the
// user has interacted with.
func (g *Generator) affinities(snap *recommend.Snapshot, userID int) (categories, brands map[string]bool) {
	categories = make(map[string]bool)
	brands = make(map[string]bool)
	for productID := range snap.Aggregates.WeightsFor(userID) {
		p, ok := snap.ProductByID(productID)
		if !ok {
			continue
		}
		if p.Category != "" {
			categories[p.Category] = true
		}
		if p.Brand != "" {
			brands[p.Brand] = true
		}
	}
	return categories, brands
}

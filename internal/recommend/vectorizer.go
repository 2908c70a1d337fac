// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a sparse feature vector in the shared product space,
// mapping term dimension to weight. Absent dimensions are 0.
type Vector map[int]float64

// VectorSpace is the shared coordinate system over the product catalog.
//
// It is built exactly once per catalog snapshot and is immutable
// afterwards: the Vectorizer is the sole writer, every other component
// holds a read-only reference. Rebuilding the catalog produces a new
// space; vectors from different spaces are never comparable.
//
// The per-product vectors are standard TF-IDF (raw term frequency x
// smoothed inverse document frequency), L2-normalized since downstream
// similarity is cosine-based. Dimensionality is the vocabulary size at
// build time. Row indices are dense integers assigned in catalog
// iteration order; the product-ID -> row map must be consulted, row
// order is not implied by product IDs.
type VectorSpace struct {
	// Vocabulary maps term to dimension index. Terms are assigned
	// indices in lexicographic order for determinism.
	Vocabulary map[string]int

	// IDF holds the inverse document frequency per dimension,
	// computed as ln((1+n)/(1+df)) + 1.
	IDF []float64

	// Vectors holds one L2-normalized vector per product, indexed by
	// dense row index in catalog iteration order.
	Vectors []Vector

	// Index maps product ID to row index in Vectors.
	Index map[int]int

	// Dim is the vector dimensionality (vocabulary size at build time).
	Dim int
}

// BuildVectorSpace builds the TF-IDF space for the given catalog.
// Deterministic given identical product ordering and text content.
func BuildVectorSpace(products []Product) *VectorSpace {
	docs := make([][]string, len(products))
	df := make(map[string]int)

	for i, p := range products {
		docs[i] = tokenize(p.Document())

		seen := make(map[string]struct{}, len(docs[i]))
		for _, term := range docs[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// Lexicographic dimension assignment keeps the space independent
	// of map iteration order.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	space := &VectorSpace{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		Vectors:    make([]Vector, len(products)),
		Index:      make(map[int]int, len(products)),
		Dim:        len(terms),
	}

	n := float64(len(products))
	for dim, term := range terms {
		space.Vocabulary[term] = dim
		space.IDF[dim] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, p := range products {
		space.Index[p.ID] = i
		space.Vectors[i] = space.vectorize(docs[i])
	}

	return space
}

// vectorize converts a tokenized document into an L2-normalized
// TF-IDF vector.
func (s *VectorSpace) vectorize(tokens []string) Vector {
	vec := make(Vector)
	for _, term := range tokens {
		dim, ok := s.Vocabulary[term]
		if !ok {
			continue
		}
		vec[dim] += s.IDF[dim]
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for dim := range vec {
			vec[dim] /= norm
		}
	}

	return vec
}

// VectorFor returns the vector for a product ID. The second return is
// false when the product is not part of this space.
func (s *VectorSpace) VectorFor(productID int) (Vector, bool) {
	row, ok := s.Index[productID]
	if !ok {
		return nil, false
	}
	return s.Vectors[row], true
}

// tokenize lowercases the text and splits it into terms: maximal runs
// of letters, digits and underscores, keeping only terms of at least
// two runes. Single-character terms carry no content signal.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var terms []string
	var current []rune
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current = append(current, r)
			continue
		}
		if len(current) >= 2 {
			terms = append(terms, string(current))
		}
		current = current[:0]
	}
	if len(current) >= 2 {
		terms = append(terms, string(current))
	}

	return terms
}

// CosineSimilarity computes the cosine of the angle between two sparse
// vectors. Returns 0 when either vector has zero norm. For non-negative
// TF-IDF weights the result lies in [0, 1].
func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Iterate over the smaller vector for the dot product.
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for dim, wa := range a {
		if wb, ok := b[dim]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, w := range a {
		normA += w * w
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

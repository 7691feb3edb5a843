// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package search implements catalog search: plain substring matching plus a
// filtered pipeline that extracts structured constraints (price bounds,
// minimum rating, age bracket, category hints) from free text and applies
// them over the catalog.
//
// Every function is total: unknown categories, unparseable queries and
// empty catalogs degrade to empty-or-unconstrained results, never errors.
package search

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/catalog"
	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/models"
)

// Searcher runs searches over an injected catalog.
type Searcher struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewSearcher creates a Searcher over the given catalog.
func NewSearcher(c *catalog.Catalog) *Searcher {
	return &Searcher{
		catalog: c,
		logger:  logging.With().Str("component", "search").Logger(),
	}
}

// Search runs a plain case-insensitive substring search over product name,
// category id and badge. Results keep catalog order with no ranking.
func (s *Searcher) Search(query string) []models.Product {
	return substringMatch(s.catalog.Products(), query)
}

// SearchWithFilters parses structured constraints out of the query, applies
// them over the catalog, and returns the ranked result list.
//
// When the query carries no inferred keywords, the plain substring match
// narrows the pool only if it finds at least one hit; a miss leaves the
// pool unfiltered and the structured constraints alone decide the result.
// That fallback reproduces the storefront's established behavior and is
// covered by tests; see the package tests before changing it.
func (s *Searcher) SearchWithFilters(query string) []models.Product {
	filters := ExtractFilters(query)

	// Step 1: candidate pool.
	var pool []models.Product
	if filters.Category != "" {
		pool = s.catalog.ProductsByCategory(filters.Category)
	} else {
		pool = s.catalog.Products()
	}

	// Steps 2-3: keyword filter, or substring search with fallback.
	if len(filters.Keywords) > 0 {
		pool = keywordMatch(pool, filters.Keywords)
	} else {
		if matched := substringMatch(pool, query); len(matched) > 0 {
			pool = matched
		}
	}

	// Step 4: structured constraints, all independent.
	filtered := pool[:0:0]
	for _, p := range pool {
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			continue
		}
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			continue
		}
		if filters.MinRating != nil && p.Rating < *filters.MinRating {
			continue
		}
		if filters.AgeRange != "" {
			if p.AgeRange == "" || !bracketsOverlap(p.AgeRange, filters.AgeRange) {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	// Step 5: popular first, then rating descending; ties keep catalog
	// order.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].IsPopular != filtered[j].IsPopular {
			return filtered[i].IsPopular
		}
		return filtered[i].Rating > filtered[j].Rating
	})

	s.logger.Debug().
		Str("query", query).
		Str("category", filters.Category).
		Int("results", len(filtered)).
		Msg("Filtered search")

	return filtered
}

// substringMatch keeps products where name, category id or badge contains
// the query, case-insensitive. An empty query matches everything.
func substringMatch(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Badge), q) {
			out = append(out, p)
		}
	}
	return out
}

// keywordMatch keeps products whose name contains any keyword,
// case-insensitive.
func keywordMatch(products []models.Product, keywords []string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		if containsAnySubstring(name, keywords) {
			out = append(out, p)
		}
	}
	return out
}

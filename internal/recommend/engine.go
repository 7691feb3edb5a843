// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package recommend scores catalog products for "you may also like"
// recommendations. The scorer is a weighted sum of content signals: shared
// category, shared age range, curated popularity, rating, price proximity,
// and a small table of complementary keyword rules (food goes with feeding
// gear, diapers with wipes, and so on).
//
// Scoring is deterministic and stateless; the engine holds only the weight
// configuration and a logger.
package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/models"
)

// ScoredItem pairs a candidate product with its affinity score against the
// base product.
type ScoredItem struct {
	Product models.Product `json:"product"`
	Score   float64        `json:"score"`
}

// complementaryRule awards a bonus when the base product's name contains
// any trigger keyword and the candidate's name contains any target keyword.
// Keywords match whole space-separated tokens, not substrings, so "formula"
// does not trigger on "formulated".
type complementaryRule struct {
	triggers []string
	targets  []string
	weight   func(Config) float64
}

var complementaryRules = []complementaryRule{
	{
		// Baby food pairs with feeding gear.
		triggers: []string{"food", "cerelac", "formula"},
		targets:  []string{"bottle", "bib", "bowl", "spoon", "feeding"},
		weight:   func(c Config) float64 { return c.ComplementaryFeeding },
	},
	{
		// Diapers pair with changing-table supplies.
		triggers: []string{"diaper", "nappy"},
		targets:  []string{"wipes", "cream", "powder", "lotion", "rash"},
		weight:   func(c Config) float64 { return c.ComplementaryDiaper },
	},
	{
		// Clothing pairs with accessories.
		triggers: []string{"dress", "shirt", "onesie", "romper", "clothing"},
		targets:  []string{"socks", "hat", "bib", "shoes", "mittens"},
		weight:   func(c Config) float64 { return c.ComplementaryClothing },
	},
	{
		// Toys pair with other play and learning items.
		triggers: []string{"toy", "bear", "blocks", "rattle"},
		targets:  []string{"toy", "play", "educational", "activity", "book"},
		weight:   func(c Config) float64 { return c.ComplementaryToy },
	},
}

// Engine scores candidates against a base product.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine creates an Engine with the given weights.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		logger: logging.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend scores every candidate against base and returns the top k by
// descending score. The base product itself is excluded. Ties keep the
// candidates' input order, so equal-scored products rank in catalog order.
// A k larger than the candidate pool returns the whole scored pool.
func (e *Engine) Recommend(base models.Product, candidates []models.Product, k int) []ScoredItem {
	if k <= 0 {
		return []ScoredItem{}
	}

	scored := make([]ScoredItem, 0, len(candidates))
	for _, p := range candidates {
		if p.ID == base.ID {
			continue
		}
		scored = append(scored, ScoredItem{Product: p, Score: e.Score(base, p)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}

	e.logger.Debug().
		Str("base_id", base.ID).
		Int("candidates", len(scored)).
		Int("returned", k).
		Msg("Recommendations computed")

	return scored[:k]
}

// Score computes the affinity score of candidate against base.
func (e *Engine) Score(base, candidate models.Product) float64 {
	var score float64

	if candidate.Category == base.Category {
		score += e.cfg.SameCategory
	}

	// Exact string match only. "0-6m" and "0-6 months" express the same
	// bracket but do not match here; bracket semantics live in the search
	// filter, this signal rewards identically-authored ranges.
	if candidate.AgeRange != "" && candidate.AgeRange == base.AgeRange {
		score += e.cfg.SameAgeRange
	}

	if candidate.IsPopular {
		score += e.cfg.Popular
	}

	if candidate.Rating >= e.cfg.HighRatingMin && candidate.Rating > 0 {
		score += e.cfg.HighRating
	}

	if candidate.Price > 0 && base.Price > 0 {
		diff := math.Abs(float64(candidate.Price)-float64(base.Price)) / float64(base.Price)
		switch {
		case diff <= e.cfg.PriceNearMax:
			score += e.cfg.PriceNear
		case diff <= e.cfg.PriceFarMax:
			score += e.cfg.PriceFar
		}
	}

	baseTokens := nameTokens(base.Name)
	candTokens := nameTokens(candidate.Name)
	for _, rule := range complementaryRules {
		if containsAny(baseTokens, rule.triggers) && containsAny(candTokens, rule.targets) {
			score += rule.weight(e.cfg)
		}
	}

	return score
}

// nameTokens lowercases a product name and splits it on spaces.
func nameTokens(name string) []string {
	return strings.Split(strings.ToLower(name), " ")
}

// containsAny reports whether any token appears in the keyword list.
func containsAny(tokens, keywords []string) bool {
	for _, t := range tokens {
		for _, k := range keywords {
			if t == k {
				return true
			}
		}
	}
	return false
}

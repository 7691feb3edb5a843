// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package search

import (
	"regexp"
	"strconv"
	"strings"
)

// FilterCriteria is the structured constraint set parsed from one free-text
// query. Nil pointer fields and empty strings mean "unconstrained". Created
// per search call and discarded after producing results.
type FilterCriteria struct {
	MaxPrice  *int
	MinPrice  *int
	MinRating *float64

	// AgeRange is a canonical bracket string such as "1-3y", chosen from a
	// fixed table by the parsed age.
	AgeRange string

	// Category restricts the candidate pool to one category.
	Category string

	// Keywords, when non-empty, replace plain substring search: a product
	// matches if its name contains any keyword.
	Keywords []string
}

// Empty reports whether no constraint was extracted.
func (f FilterCriteria) Empty() bool {
	return f.MaxPrice == nil && f.MinPrice == nil && f.MinRating == nil &&
		f.AgeRange == "" && f.Category == "" && len(f.Keywords) == 0
}

// Extraction patterns. All matching runs on the lowercased query. A price
// constraint requires both a trigger word and a currency marker ("rs" or
// "₹") so bare numbers in product names never become price filters.
var (
	maxPricePattern  = regexp.MustCompile(`(?:price|cost|budget)[^,.;]*?(?:\brs\b\.?|₹)\s*(\d+)`)
	minPricePattern  = regexp.MustCompile(`(?:above|over|minimum)[^,.;]*?(?:\brs\b\.?|₹)\s*(\d+)`)
	ratingPattern    = regexp.MustCompile(`rating\s*(?:of\s*)?(\d+(?:\.\d+)?)\s*\+?`)
	ratingPrePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:star\s+)?rating`)
	agePattern       = regexp.MustCompile(`age\s*:?\s*(\d+)\s*(years?|months?|y\b|m\b)?`)
)

// categoryRules maps query substrings to an inferred category and optional
// name keywords. First match wins, evaluated in declaration order.
var categoryRules = []struct {
	substrings []string
	category   string
	keywords   []string
}{
	{[]string{"t-shirt", "tshirt"}, "baby-casuals", []string{"t-shirt", "shirt"}},
	{[]string{"dress"}, "baby-casuals", []string{"dress"}},
	{[]string{"food", "cereal", "formula"}, "baby-food", nil},
	{[]string{"traditional", "ethnic"}, "baby-traditionals", nil},
}

// ExtractFilters parses a free-text query into structured constraints using
// pattern matching. It never fails: a query with no recognizable pattern
// yields an empty FilterCriteria, which callers treat as "fall back to
// plain search".
func ExtractFilters(query string) FilterCriteria {
	q := strings.ToLower(query)
	var f FilterCriteria

	if m := maxPricePattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			f.MaxPrice = &v
		}
	}
	if m := minPricePattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			f.MinPrice = &v
		}
	}
	if m := ratingPattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinRating = &v
		}
	} else if m := ratingPrePattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinRating = &v
		}
	}

	if m := agePattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			years := n
			if strings.HasPrefix(m[2], "m") {
				years = n / 12
			}
			f.AgeRange = bracketForAge(years)
		}
	}

	for _, rule := range categoryRules {
		if containsAnySubstring(q, rule.substrings) {
			f.Category = rule.category
			f.Keywords = rule.keywords
			break
		}
	}

	return f
}

// bracketForAge maps an integer age in years to one of five fixed catalog
// brackets. Ages over eight get no bracket: the catalog carries nothing
// that specific.
func bracketForAge(years int) string {
	switch {
	case years == 0:
		return "0-6m"
	case years <= 1:
		return "0-18m"
	case years <= 2:
		return "1-3y"
	case years <= 5:
		return "2-6y"
	case years <= 8:
		return "5-8y"
	default:
		return ""
	}
}

// ageBoundPattern matches one bracket bound: a number with a unit suffix.
// Long-form spellings ("months", "years") appear in some seed entries.
var ageBoundPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(months?|years?|m|y)`)

// parseAgeBound converts one bracket bound to fractional years. A bound
// without a recognized unit suffix contributes 0, mirroring the storefront's
// observed behavior rather than treating it as a parse error.
func parseAgeBound(s string) float64 {
	m := ageBoundPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(m[2], "m") {
		return v / 12
	}
	return v
}

// bracketsOverlap reports whether two age brackets intersect. Each bracket
// is "min-max"; bounds parse to fractional years (months divided by 12).
// Two brackets overlap iff min(a) <= max(b) and max(a) >= min(b).
func bracketsOverlap(a, b string) bool {
	aMin, aMax, ok := parseBracket(a)
	if !ok {
		return false
	}
	bMin, bMax, ok := parseBracket(b)
	if !ok {
		return false
	}
	return aMin <= bMax && aMax >= bMin
}

// parseBracket splits "min-max" and parses both bounds. A bracket with a
// single trailing unit ("6-12m") yields a unitless first bound, which
// parses as 0.
func parseBracket(s string) (minYears, maxYears float64, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	return parseAgeBound(parts[0]), parseAgeBound(parts[1]), true
}

// containsAnySubstring reports whether s contains any of the needles.
func containsAnySubstring(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

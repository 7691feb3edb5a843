// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package recommend

import "fmt"

// Config holds the affinity scoring weights. The defaults reproduce the
// storefront's established ranking; golden-set ordering tests pin the
// default behavior, so change weights only deliberately.
type Config struct {
	// SameCategory is awarded when the candidate shares the base
	// product's category.
	SameCategory float64 `koanf:"same_category"`

	// SameAgeRange is awarded on an exact age-range string match.
	SameAgeRange float64 `koanf:"same_age_range"`

	// Popular is awarded to curated popular products.
	Popular float64 `koanf:"popular"`

	// HighRating is awarded when the candidate's rating meets
	// HighRatingMin.
	HighRating    float64 `koanf:"high_rating"`
	HighRatingMin float64 `koanf:"high_rating_min"`

	// PriceNear is awarded when the relative price difference is within
	// PriceNearMax; PriceFar when it is within PriceFarMax. The bands are
	// mutually exclusive, nearest wins.
	PriceNear    float64 `koanf:"price_near"`
	PriceNearMax float64 `koanf:"price_near_max"`
	PriceFar     float64 `koanf:"price_far"`
	PriceFarMax  float64 `koanf:"price_far_max"`

	// Weights for the complementary keyword cross-sell rules.
	ComplementaryFeeding  float64 `koanf:"complementary_feeding"`
	ComplementaryDiaper   float64 `koanf:"complementary_diaper"`
	ComplementaryClothing float64 `koanf:"complementary_clothing"`
	ComplementaryToy      float64 `koanf:"complementary_toy"`
}

// DefaultConfig returns the production scoring weights.
func DefaultConfig() Config {
	return Config{
		SameCategory:          10,
		SameAgeRange:          8,
		Popular:               3,
		HighRating:            2,
		HighRatingMin:         4.5,
		PriceNear:             5,
		PriceNearMax:          0.5,
		PriceFar:              2,
		PriceFarMax:           1.0,
		ComplementaryFeeding:  6,
		ComplementaryDiaper:   6,
		ComplementaryClothing: 6,
		ComplementaryToy:      4,
	}
}

// Validate checks that the weight configuration is internally consistent.
func (c Config) Validate() error {
	if c.HighRatingMin < 0 || c.HighRatingMin > 5 {
		return fmt.Errorf("high_rating_min must be in [0,5], got %v", c.HighRatingMin)
	}
	if c.PriceNearMax < 0 {
		return fmt.Errorf("price_near_max must be >= 0, got %v", c.PriceNearMax)
	}
	if c.PriceFarMax < c.PriceNearMax {
		return fmt.Errorf("price_far_max (%v) must be >= price_near_max (%v)",
			c.PriceFarMax, c.PriceNearMax)
	}
	return nil
}

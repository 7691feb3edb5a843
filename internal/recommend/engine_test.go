// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package recommend

import (
	"testing"

	"github.com/tomtom215/cradlecart/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestScore(t *testing.T) {
	e := newTestEngine(t)

	base := models.Product{
		ID: "base", Name: "Organic Baby Food Jar", Category: "baby-food",
		Price: 300, AgeRange: "6-12m",
	}

	tests := []struct {
		name      string
		candidate models.Product
		want      float64
	}{
		{
			name:      "no shared signals",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000},
			want:      0,
		},
		{
			name:      "same category",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "baby-food", Price: 3000},
			want:      10,
		},
		{
			name:      "same age range",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000, AgeRange: "6-12m"},
			want:      8,
		},
		{
			// Both sides lacking an age range must not count as a match.
			name:      "both age ranges empty",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000},
			want:      0,
		},
		{
			name:      "popular",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000, IsPopular: true},
			want:      3,
		},
		{
			name:      "high rating",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000, Rating: 4.5},
			want:      2,
		},
		{
			name:      "rating below threshold",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 3000, Rating: 4.4},
			want:      0,
		},
		{
			// |450-300|/300 = 0.5, on the near boundary.
			name:      "price near",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 450},
			want:      5,
		},
		{
			// |600-300|/300 = 1.0, on the far boundary.
			name:      "price far",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 600},
			want:      2,
		},
		{
			// |700-300|/300 > 1.0.
			name:      "price out of range",
			candidate: models.Product{ID: "c", Name: "Wooden Chair", Category: "furniture", Price: 700},
			want:      0,
		},
		{
			// "food" trigger, "bottle" target.
			name:      "complementary feeding",
			candidate: models.Product{ID: "c", Name: "Glass Feeding Bottle", Category: "furniture", Price: 3000},
			want:      6,
		},
		{
			// Tokens must match whole words: "bottleneck" is not "bottle".
			name:      "complementary needs whole token",
			candidate: models.Product{ID: "c", Name: "Traffic Bottleneck Poster", Category: "furniture", Price: 3000},
			want:      0,
		},
		{
			name: "signals accumulate",
			candidate: models.Product{
				ID: "c", Name: "Fruit Bowl Set", Category: "baby-food",
				Price: 320, AgeRange: "6-12m", IsPopular: true, Rating: 4.8,
			},
			// category 10 + age 8 + popular 3 + rating 2 + price near 5 + feeding 6
			want: 34,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Score(base, tt.candidate); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreComplementaryRules(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		base      string
		candidate string
		want      float64
	}{
		{"diaper to wipes", "Pampers Diaper Pack", "Gentle Baby Wipes", 6},
		{"clothing to socks", "Cotton Romper Onesie", "Warm Socks Pair", 6},
		{"toy to book", "Stacking Blocks Toy", "Picture Book Set", 4},
		{"toy to play item", "Soft Rattle", "Play Gym Mat", 4},
		{"no pairing", "Bath Towel", "Night Lamp", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Prices far enough apart that no price signal fires.
			base := models.Product{ID: "b", Name: tt.base, Category: "x", Price: 100}
			cand := models.Product{ID: "c", Name: tt.candidate, Category: "y", Price: 10000}
			if got := e.Score(base, cand); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.base, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	e := newTestEngine(t)

	base := models.Product{ID: "base", Name: "Baby Formula Tin", Category: "baby-food", Price: 1000}
	candidates := []models.Product{
		base,
		{ID: "p1", Name: "Night Lamp", Category: "decor", Price: 5000},
		{ID: "p2", Name: "Rice Cereal", Category: "baby-food", Price: 900, IsPopular: true},
		{ID: "p3", Name: "Feeding Bottle", Category: "essentials", Price: 400},
		{ID: "p4", Name: "Oat Cereal", Category: "baby-food", Price: 950},
	}

	t.Run("excludes base product", func(t *testing.T) {
		for _, item := range e.Recommend(base, candidates, 10) {
			if item.Product.ID == base.ID {
				t.Error("Recommend() returned the base product")
			}
		}
	})

	t.Run("returns at most k", func(t *testing.T) {
		if got := len(e.Recommend(base, candidates, 2)); got != 2 {
			t.Errorf("len = %d, want 2", got)
		}
	})

	t.Run("k larger than pool returns whole pool", func(t *testing.T) {
		if got := len(e.Recommend(base, candidates, 100)); got != 4 {
			t.Errorf("len = %d, want 4", got)
		}
	})

	t.Run("non-positive k returns empty", func(t *testing.T) {
		if got := len(e.Recommend(base, candidates, 0)); got != 0 {
			t.Errorf("len = %d, want 0", got)
		}
	})

	t.Run("sorted by descending score", func(t *testing.T) {
		items := e.Recommend(base, candidates, 10)
		for i := 1; i < len(items); i++ {
			if items[i].Score > items[i-1].Score {
				t.Errorf("items[%d].Score = %v > items[%d].Score = %v", i, items[i].Score, i-1, items[i-1].Score)
			}
		}
	})

	t.Run("golden ordering", func(t *testing.T) {
		// p2 (category 10 + popular 3 + price near 5 = 18) beats
		// p4 (category 10 + price near 5 = 15); both beat the rest.
		items := e.Recommend(base, candidates, 10)
		if items[0].Product.ID != "p2" || items[1].Product.ID != "p4" {
			t.Errorf("top two = %s, %s; want p2, p4", items[0].Product.ID, items[1].Product.ID)
		}
	})
}

func TestRecommendTieStability(t *testing.T) {
	e := newTestEngine(t)

	base := models.Product{ID: "base", Name: "Baby Formula Tin", Category: "baby-food", Price: 100}

	// Identical signals across the board: same category only, prices far
	// enough from the base that no price term fires. Both score exactly
	// the same, so the input order has to decide.
	tied := []models.Product{
		{ID: "zz-first", Name: "Wheat Porridge", Category: "baby-food", Price: 10000},
		{ID: "aa-second", Name: "Ragi Porridge", Category: "baby-food", Price: 10000},
	}

	got := e.Recommend(base, tied, 2)
	if len(got) != 2 {
		t.Fatalf("len(Recommend()) = %d, want 2", len(got))
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("scores %v and %v differ, fixture no longer ties", got[0].Score, got[1].Score)
	}
	if got[0].Product.ID != "zz-first" || got[1].Product.ID != "aa-second" {
		t.Errorf("tied order = [%s %s], want input order preserved",
			got[0].Product.ID, got[1].Product.ID)
	}

	// Reversing the input must reverse the output, proving the order comes
	// from the candidate slice and not from the ids.
	reversed := []models.Product{tied[1], tied[0]}
	got = e.Recommend(base, reversed, 2)
	if got[0].Product.ID != "aa-second" || got[1].Product.ID != "zz-first" {
		t.Errorf("reversed tied order = [%s %s], want reversed input order preserved",
			got[0].Product.ID, got[1].Product.ID)
	}
}

func TestRecommendCategoryMonotonicity(t *testing.T) {
	e := newTestEngine(t)

	base := models.Product{ID: "base", Name: "Soft Blanket", Category: "essentials", Price: 500}
	shared := models.Product{ID: "a", Name: "Night Lamp", Category: "essentials", Price: 500}
	other := shared
	other.ID = "b"
	other.Category = "decor"

	if e.Score(base, shared) <= e.Score(base, other) {
		t.Errorf("shared-category score %v not greater than other-category score %v",
			e.Score(base, shared), e.Score(base, other))
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

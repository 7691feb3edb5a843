// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestDiscounted(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"original above price", Product{Price: 299, OriginalPrice: 349}, true},
		{"no original price", Product{Price: 299}, false},
		{"original equals price", Product{Price: 299, OriginalPrice: 299}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.Discounted(); got != tt.want {
				t.Errorf("Discounted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductJSONShape(t *testing.T) {
	p := Product{
		ID: "bf1", Name: "Cerelac", Price: 299, Category: "baby-food",
		AgeRange: "6-12m", IsPopular: true,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, key := range []string{"id", "name", "price", "category", "age_range", "is_popular"} {
		if _, ok := m[key]; !ok {
			t.Errorf("marshaled product missing %q", key)
		}
	}
	// Optional zero fields stay off the wire.
	for _, key := range []string{"badge", "rating", "original_price"} {
		if _, ok := m[key]; ok {
			t.Errorf("zero field %q serialized", key)
		}
	}
}

// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedSeed(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := c.Len(); got != 70 {
		t.Errorf("Len() = %d, want 70", got)
	}
	if got := len(c.Categories()); got != 9 {
		t.Errorf("len(Categories()) = %d, want 9", got)
	}

	p, ok := c.ProductByID("bf1")
	if !ok {
		t.Fatal("ProductByID(bf1) not found")
	}
	if p.Category != "baby-food" {
		t.Errorf("bf1 category = %q, want baby-food", p.Category)
	}

	if _, ok := c.ProductByID("nope"); ok {
		t.Error("ProductByID(nope) found, want miss")
	}

	food := c.ProductsByCategory("baby-food")
	if len(food) != 10 {
		t.Errorf("len(ProductsByCategory(baby-food)) = %d, want 10", len(food))
	}

	if got := c.ProductsByCategory("unknown"); len(got) != 0 {
		t.Errorf("ProductsByCategory(unknown) = %d products, want 0", len(got))
	}

	cat, ok := c.CategoryByID("diapers-essentials")
	if !ok || cat.ID != "diapers-essentials" {
		t.Errorf("CategoryByID(diapers-essentials) = %+v, %v", cat, ok)
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	products := c.Products()
	original := products[0].Name
	products[0].Name = "mutated"

	if got := c.Products()[0].Name; got != original {
		t.Errorf("Products()[0].Name = %q after caller mutation, want %q", got, original)
	}

	cats := c.Categories()
	cats[0].ID = "mutated"
	if got := c.Categories()[0].ID; got == "mutated" {
		t.Error("Categories() exposed internal slice")
	}
}

func TestLoadFromFile(t *testing.T) {
	valid := `{
		"categories": [{"id": "toys", "name": "Toys", "color": "#fff", "tagline": "Play time"}],
		"products": [{
			"id": "t1", "name": "Teddy Bear", "price": 499, "original_price": 599,
			"image": "https://example.com/t1.jpg", "category": "toys",
			"badge": "New", "rating": 4.5, "reviews": 10, "emoji": "🧸",
			"age_range": "0-3y", "is_popular": true
		}]
	}`

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid seed", valid, false},
		{"empty categories", `{"categories": [], "products": []}`, true},
		{"malformed json", `{"categories": [`, true},
		{
			name: "unknown category reference",
			content: `{
				"categories": [{"id": "toys", "name": "Toys", "color": "#fff", "tagline": "Play"}],
				"products": [{
					"id": "t1", "name": "Teddy Bear", "price": 499, "original_price": 599,
					"image": "https://example.com/t1.jpg", "category": "books",
					"badge": "New", "rating": 4.5, "reviews": 10, "emoji": "🧸",
					"age_range": "0-3y", "is_popular": true
				}]
			}`,
			wantErr: true,
		},
		{
			name: "malformed age range",
			content: `{
				"categories": [{"id": "toys", "name": "Toys", "color": "#fff", "tagline": "Play"}],
				"products": [{
					"id": "t1", "name": "Teddy Bear", "price": 499, "category": "toys",
					"age_range": "newborn and up"
				}]
			}`,
			wantErr: true,
		},
		{
			name: "category id not a slug",
			content: `{
				"categories": [{"id": "Toys And Games", "name": "Toys", "color": "#fff", "tagline": "Play"}],
				"products": [{
					"id": "t1", "name": "Teddy Bear", "price": 499, "category": "Toys And Games"
				}]
			}`,
			wantErr: true,
		},
		{
			name: "duplicate product id",
			content: `{
				"categories": [{"id": "toys", "name": "Toys", "color": "#fff", "tagline": "Play"}],
				"products": [
					{"id": "t1", "name": "Teddy Bear", "price": 499, "original_price": 599,
					 "image": "https://example.com/t1.jpg", "category": "toys",
					 "badge": "New", "rating": 4.5, "reviews": 10, "emoji": "🧸"},
					{"id": "t1", "name": "Teddy Bear 2", "price": 599, "original_price": 699,
					 "image": "https://example.com/t2.jpg", "category": "toys",
					 "badge": "New", "rating": 4.5, "reviews": 10, "emoji": "🧸"}
				]
			}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			_, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}

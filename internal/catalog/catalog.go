// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package catalog loads and serves the product catalog. The catalog is
// immutable after load: all read methods are safe for concurrent use and
// return copies, never internal slices.
//
// By default the embedded demo seed is used; operators can point
// catalog.path at a JSON file with the same shape to serve their own data.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/models"
	"github.com/tomtom215/cradlecart/internal/validation"
)

//go:embed seed.json
var embeddedSeed []byte

// seedFile is the on-disk / embedded catalog shape.
type seedFile struct {
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

// Catalog is the immutable in-memory product catalog.
type Catalog struct {
	categories []models.Category
	products   []models.Product

	// byID and byCategory index into products. Products within a category
	// keep their seed order; the flat products slice keeps the overall
	// seed order, which downstream ranking relies on for stable ties.
	byID       map[string]int
	byCategory map[string][]int

	logger zerolog.Logger
}

// Load builds a Catalog from the file at path, or from the embedded demo
// seed when path is empty. Every product and category is validated; a single
// invalid entry fails the whole load so a bad seed never half-serves.
func Load(path string) (*Catalog, error) {
	data := embeddedSeed
	source := "embedded"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		data = b
		source = path
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}
	if len(seed.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s has no categories", source)
	}
	if len(seed.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", source)
	}

	c := &Catalog{
		categories: seed.Categories,
		products:   seed.Products,
		byID:       make(map[string]int, len(seed.Products)),
		byCategory: make(map[string][]int, len(seed.Categories)),
		logger:     logging.With().Str("component", "catalog").Logger(),
	}

	knownCategories := make(map[string]bool, len(seed.Categories))
	for i, cat := range seed.Categories {
		if verr := validation.ValidateStruct(cat); verr != nil {
			return nil, fmt.Errorf("catalog %s: category %d invalid: %w", source, i, verr)
		}
		if knownCategories[cat.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate category id %q", source, cat.ID)
		}
		knownCategories[cat.ID] = true
	}

	for i, p := range seed.Products {
		if verr := validation.ValidateStruct(p); verr != nil {
			return nil, fmt.Errorf("catalog %s: product %q invalid: %w", source, p.ID, verr)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate product id %q", source, p.ID)
		}
		if !knownCategories[p.Category] {
			return nil, fmt.Errorf("catalog %s: product %q references unknown category %q",
				source, p.ID, p.Category)
		}
		c.byID[p.ID] = i
		c.byCategory[p.Category] = append(c.byCategory[p.Category], i)
	}

	c.logger.Info().
		Str("source", source).
		Int("categories", len(c.categories)).
		Int("products", len(c.products)).
		Msg("Catalog loaded")

	return c, nil
}

// Categories returns all categories in seed order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryByID returns the category with the given id.
func (c *Catalog) CategoryByID(id string) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

// Products returns every product across all categories in seed order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductsByCategory returns the products of one category in seed order.
// Unknown category ids yield an empty slice, not an error, matching the
// "empty category is a valid state" contract.
func (c *Catalog) ProductsByCategory(categoryID string) []models.Product {
	idxs := c.byCategory[categoryID]
	out := make([]models.Product, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.products[i])
	}
	return out
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Len returns the total number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

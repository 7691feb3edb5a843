// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package models defines the domain types shared across the service:
// products, categories, and the standardized API response envelope.
package models

// Product represents one sellable catalog item.
//
// Optional fields follow the seed data conventions: a zero Rating means
// "unrated" and sorts/scores as 0, an empty AgeRange means the item is not
// age-restricted, and OriginalPrice of 0 means the item is not discounted.
type Product struct {
	// ID is the unique stable identifier, assigned at catalog authoring
	// time. Unique across the entire catalog, all categories combined.
	ID string `json:"id" validate:"required"`

	// Name is the display name and the substring-search field.
	Name string `json:"name" validate:"required"`

	// Price is the current price as a positive integer. The value is
	// currency minor-unit agnostic.
	Price int `json:"price" validate:"gt=0"`

	// OriginalPrice is the optional pre-discount price. When set it is
	// expected to be >= Price; display code derives the discount badge
	// from the difference.
	OriginalPrice int `json:"original_price,omitempty" validate:"omitempty,gt=0"`

	// Image is the product image URL. Presentation only.
	Image string `json:"image,omitempty"`

	// Category references the owning Category by id. Every product
	// belongs to exactly one category.
	Category string `json:"category" validate:"required,category_id"`

	// Badge is an optional short promotional label. Searchable.
	Badge string `json:"badge,omitempty"`

	// Description is optional display text.
	Description string `json:"description,omitempty"`

	// Rating is the optional average review rating in [0,5].
	// Zero means unrated.
	Rating float64 `json:"rating,omitempty" validate:"gte=0,lte=5"`

	// Reviews is the optional review count. Display only, never ranked on.
	Reviews int `json:"reviews,omitempty" validate:"gte=0"`

	// Emoji is an optional decorative glyph. Presentation only.
	Emoji string `json:"emoji,omitempty"`

	// AgeRange encodes an age bracket such as "0-6m" or "2-6y": numeric
	// bounds with a unit suffix (m = months, y = years). The seed data
	// also carries long-form spellings like "0-6 months".
	AgeRange string `json:"age_range,omitempty" validate:"omitempty,age_range"`

	// IsPopular is a manual curation flag, not derived from sales data.
	IsPopular bool `json:"is_popular,omitempty"`
}

// Discounted reports whether the product carries a visible discount.
func (p Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// Category is a named partition of the catalog. Categories form a fixed
// enumerated list; they are never created or destroyed at runtime.
type Category struct {
	ID   string `json:"id" validate:"required,category_id"`
	Name string `json:"name" validate:"required"`

	// Color and Tagline are presentation hints for the storefront.
	Color   string `json:"color,omitempty"`
	Tagline string `json:"tagline,omitempty"`
}

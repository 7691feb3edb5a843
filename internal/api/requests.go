// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

// Request DTOs with validation tags. Every body-carrying endpoint decodes
// into one of these and runs it through validateRequest before touching the
// services.

// AddItemRequest adds a product to a cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`

	// Quantity 0 means "default of 1".
	Quantity int `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest sets the quantity of one cart line. Zero removes
// the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// OrderRequest places or quotes an order.
type OrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`

	// Frequency selects a subscription plan; empty means a one-time
	// purchase.
	Frequency string `json:"frequency" validate:"omitempty,oneof=weekly bi-weekly monthly bi-monthly"`

	// Address is the delivery address. Quoting ignores it; placement
	// rejects orders without one.
	Address string `json:"address" validate:"max=500"`
}

// ChatRequest is one assistant chat turn.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`

	// Offset pages through product-search results ("view more").
	Offset int `json:"offset" validate:"gte=0"`
}

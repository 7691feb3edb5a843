// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cradlecart/internal/cart"
	"github.com/tomtom215/cradlecart/internal/models"
)

// CreateCart handles POST /api/v1/carts.
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := h.carts.Create()
	respondSuccess(w, r, http.StatusCreated, map[string]interface{}{
		"cart_id": id,
	}, start)
}

// GetCart handles GET /api/v1/carts/{cartID}.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.carts.Summary(chi.URLParam(r, "cartID"))
	if err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, summary, start)
}

// DeleteCart handles DELETE /api/v1/carts/{cartID}.
func (h *Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.carts.Delete(chi.URLParam(r, "cartID")); err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"deleted": true,
	}, start)
}

// AddCartItem handles POST /api/v1/carts/{cartID}/items.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AddItemRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	product, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Product not found", nil)
		return
	}

	cartID := chi.URLParam(r, "cartID")
	if err := h.carts.AddItem(cartID, product, req.Quantity); err != nil {
		respondCartError(w, err)
		return
	}

	summary, err := h.carts.Summary(cartID)
	if err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, summary, start)
}

// UpdateCartItem handles PUT /api/v1/carts/{cartID}/items/{productID}.
// Quantity zero removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req UpdateQuantityRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	cartID := chi.URLParam(r, "cartID")
	if err := h.carts.UpdateQuantity(cartID, chi.URLParam(r, "productID"), req.Quantity); err != nil {
		respondCartError(w, err)
		return
	}

	summary, err := h.carts.Summary(cartID)
	if err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, summary, start)
}

// RemoveCartItem handles DELETE /api/v1/carts/{cartID}/items/{productID}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cartID := chi.URLParam(r, "cartID")
	if err := h.carts.RemoveItem(cartID, chi.URLParam(r, "productID")); err != nil {
		respondCartError(w, err)
		return
	}

	summary, err := h.carts.Summary(cartID)
	if err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, summary, start)
}

// ClearCart handles DELETE /api/v1/carts/{cartID}/items.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cartID := chi.URLParam(r, "cartID")
	if err := h.carts.Clear(cartID); err != nil {
		respondCartError(w, err)
		return
	}

	summary, err := h.carts.Summary(cartID)
	if err != nil {
		respondCartError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, summary, start)
}

func respondCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrCartNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Cart not found", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Cart operation failed", err)
}

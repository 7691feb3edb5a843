// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cradlecart/internal/checkout"
	"github.com/tomtom215/cradlecart/internal/models"
)

// Plans handles GET /api/v1/checkout/plans.
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	plans := checkout.Plans()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"count": len(plans),
		"plans": plans,
	}, start)
}

// QuoteOrder handles POST /api/v1/checkout/quote. It prices an order without
// placing it, so the storefront can preview subscription savings.
func (h *Handler) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	product, req, ok := h.decodeOrderRequest(w, r)
	if !ok {
		return
	}

	quote, err := h.checkout.QuoteOrder(product, req.Quantity, req.Frequency)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, quote, start)
}

// PlaceOrder handles POST /api/v1/checkout/orders. Placement waits out the
// simulated processing delay and honors client disconnects.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	product, req, ok := h.decodeOrderRequest(w, r)
	if !ok {
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), product, req.Quantity, req.Frequency, req.Address)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respondError(w, http.StatusRequestTimeout, models.ErrCodeUnavailable, "Order processing interrupted", err)
			return
		}
		respondCheckoutError(w, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, order, start)
}

// Orders handles GET /api/v1/checkout/orders.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	orders := h.checkout.Orders()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"count":  len(orders),
		"orders": orders,
	}, start)
}

// OrderByID handles GET /api/v1/checkout/orders/{orderID}.
func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	order, ok := h.checkout.OrderByID(chi.URLParam(r, "orderID"))
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Order not found", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, order, start)
}

// decodeOrderRequest decodes and validates an order body and resolves the
// product. It writes the error response itself and returns ok=false on
// failure.
func (h *Handler) decodeOrderRequest(w http.ResponseWriter, r *http.Request) (models.Product, OrderRequest, bool) {
	var req OrderRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return models.Product{}, req, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return models.Product{}, req, false
	}

	product, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Product not found", nil)
		return models.Product{}, req, false
	}
	return product, req, true
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrUnknownPlan):
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, "Unknown subscription plan", nil)
	case errors.Is(err, checkout.ErrNotSubscribable):
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, "Product is not eligible for subscription", nil)
	case errors.Is(err, checkout.ErrAddressRequired):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Delivery address is required", nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Checkout failed", err)
	}
}

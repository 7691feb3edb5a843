// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cradlecart/internal/metrics"
	"github.com/tomtom215/cradlecart/internal/models"
)

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cats := h.catalog.Categories()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"count":      len(cats),
		"categories": cats,
	}, start)
}

// Products handles GET /api/v1/products with optional ?category=, ?limit=
// and ?offset=. An unknown category yields an empty list, not an error.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var products []models.Product
	if category := r.URL.Query().Get("category"); category != "" {
		products = h.catalog.ProductsByCategory(category)
	} else {
		products = h.catalog.Products()
	}

	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize)
	if limit < 1 {
		limit = h.cfg.API.DefaultPageSize
	}
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	total := len(products)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"count":    end - offset,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
		"products": products[offset:end],
	}, start)
}

// ProductByID handles GET /api/v1/products/{id}.
func (h *Handler) ProductByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	product, ok := h.catalog.ProductByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Product not found", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, product, start)
}

// Recommendations handles GET /api/v1/products/{id}/recommendations with
// optional ?limit=. The limit clamps to the configured maximum.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	base, ok := h.catalog.ProductByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Product not found", nil)
		return
	}

	limit := getIntParam(r, "limit", h.cfg.Recommend.DefaultK)
	if limit < 1 {
		limit = h.cfg.Recommend.DefaultK
	}
	if limit > h.cfg.Recommend.MaxK {
		limit = h.cfg.Recommend.MaxK
	}

	items := h.engine.Recommend(base, h.catalog.Products(), limit)
	metrics.RecommendationsTotal.Inc()

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"base_id":         base.ID,
		"count":           len(items),
		"recommendations": items,
	}, start)
}

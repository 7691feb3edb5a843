// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package api exposes the storefront over HTTP: catalog browsing,
// recommendations, search, carts, checkout and the chat assistant, all
// wrapped in a standardized response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cradlecart/internal/assistant"
	"github.com/tomtom215/cradlecart/internal/cart"
	"github.com/tomtom215/cradlecart/internal/catalog"
	"github.com/tomtom215/cradlecart/internal/checkout"
	"github.com/tomtom215/cradlecart/internal/config"
	"github.com/tomtom215/cradlecart/internal/models"
	"github.com/tomtom215/cradlecart/internal/recommend"
	"github.com/tomtom215/cradlecart/internal/search"
)

// Handler holds the wired services behind the HTTP endpoints.
type Handler struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	engine    *recommend.Engine
	searcher  *search.Searcher
	carts     *cart.Store
	checkout  *checkout.Service
	assistant *assistant.Service

	version   string
	startTime time.Time
}

// NewHandler wires the services into a Handler.
func NewHandler(
	cfg *config.Config,
	cat *catalog.Catalog,
	engine *recommend.Engine,
	searcher *search.Searcher,
	carts *cart.Store,
	co *checkout.Service,
	as *assistant.Service,
	version string,
) *Handler {
	return &Handler{
		cfg:       cfg,
		catalog:   cat,
		engine:    engine,
		searcher:  searcher,
		carts:     carts,
		checkout:  co,
		assistant: as,
		version:   version,
		startTime: time.Now(),
	}
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"products":       h.catalog.Len(),
	}, start)
}

// Live handles GET /api/v1/live. Answering at all is the liveness signal,
// so no dependency checks.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status": "alive",
	}, start)
}

// Ready handles GET /api/v1/ready. The catalog loads before the server
// starts, so readiness reduces to having products to serve.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Catalog is empty", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"products": h.catalog.Len(),
	}, start)
}

// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cradlecart/internal/metrics"
	"github.com/tomtom215/cradlecart/internal/models"
)

// Search handles GET /api/v1/search?q=...&mode=plain|filtered. Filtered
// mode extracts price, rating, age and category constraints from the query
// text before matching; plain mode is a bare substring match.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, "Query parameter 'q' is required", nil)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "filtered"
	}

	var results []models.Product
	switch mode {
	case "plain":
		results = h.searcher.Search(query)
	case "filtered":
		results = h.searcher.SearchWithFilters(query)
	default:
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, "Parameter 'mode' must be 'plain' or 'filtered'", nil)
		return
	}
	metrics.RecordSearch(mode, len(results))

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"query":   query,
		"mode":    mode,
		"count":   len(results),
		"results": results,
	}, start)
}

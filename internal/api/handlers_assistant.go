// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cradlecart/internal/models"
)

// Chat handles POST /api/v1/assistant/chat. The assistant never fails a
// request outright: LLM errors surface as a canned fallback reply inside a
// successful envelope.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ChatRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	reply := h.assistant.Chat(r.Context(), req.Message, req.Offset)
	respondSuccess(w, r, http.StatusOK, reply, start)
}

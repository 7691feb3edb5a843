// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package assistant implements the shopping chat assistant. Each message is
// routed by intent: shopping phrases ("order", "buy", "find me") run a
// ranked catalog search, everything else goes to an external language model
// behind a circuit breaker, with canned replies when the model is disabled
// or unavailable.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/metrics"
	"github.com/tomtom215/cradlecart/internal/models"
	"github.com/tomtom215/cradlecart/internal/search"
)

// systemPrompt frames the model as a baby-care shopping assistant.
const systemPrompt = `You are a helpful baby care assistant for the Cradlecart storefront. You specialize in:
- Baby feeding, nutrition, and formula advice
- Sleep schedules and sleep training
- Baby development milestones
- Baby safety and childproofing
- Diaper care and potty training
- Baby health and wellness
- Baby toys and activities
- Baby clothing and essentials

Always provide helpful, accurate, and safe advice for parents. Use emojis to make responses friendly and engaging. Keep responses concise but informative. If asked about products, mention that you can help find products on Cradlecart. Use bullet points, but avoid heavy formatting.`

// Canned replies for degraded paths.
const (
	fallbackReply = "I'm sorry, I'm having trouble processing your request right now. Please try again! 😊"
	noResultReply = "Sorry, I couldn't find that product. Try again with different keywords like 'diaper', 'food', 'clothes', or 'toys'. 😊"
	disabledReply = "I can help you find products! Try something like \"find diapers\" or \"show me baby food\". 🛍️"
)

// defaultPageSize is how many products one chat reply shows before the
// shopper asks for more.
const defaultPageSize = 3

// Reply is the assistant's answer to one chat message.
type Reply struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`

	// Products carries the current page of results for product searches.
	Products []models.Product `json:"products,omitempty"`

	// Total is the full result count; Offset and HasMore describe the
	// page window so the client can ask for the next slice.
	Total   int  `json:"total,omitempty"`
	Offset  int  `json:"offset,omitempty"`
	HasMore bool `json:"has_more,omitempty"`
}

// Service answers chat messages using the catalog searcher and an optional
// language model client.
type Service struct {
	searcher *search.Searcher

	// llm is nil when the assistant's model integration is disabled;
	// question intents then get a canned reply.
	llm *LLMClient

	logger zerolog.Logger
}

// NewService creates the assistant. Pass a nil llm to run in search-only
// mode.
func NewService(searcher *search.Searcher, llm *LLMClient) *Service {
	return &Service{
		searcher: searcher,
		llm:      llm,
		logger:   logging.With().Str("component", "assistant").Logger(),
	}
}

// Chat answers one message. offset selects the result page for product
// searches: 0 for a fresh search, the previous Offset+len(Products) for
// "view more".
func (s *Service) Chat(ctx context.Context, message string, offset int) Reply {
	intent := DetectIntent(message)
	metrics.AssistantRequestsTotal.WithLabelValues(string(intent)).Inc()

	if intent == IntentProductSearch {
		return s.productSearch(message, offset)
	}
	return s.answerQuestion(ctx, message)
}

// productSearch runs the ranked search and slices out one page.
func (s *Service) productSearch(message string, offset int) Reply {
	found := s.SearchProducts(message)
	metrics.RecordSearch("assistant", len(found))

	if len(found) == 0 {
		return Reply{Intent: IntentProductSearch, Text: noResultReply}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(found) {
		offset = len(found)
	}

	end := offset + defaultPageSize
	if end > len(found) {
		end = len(found)
	}

	plural := ""
	if len(found) > 1 {
		plural = "s"
	}

	return Reply{
		Intent:   IntentProductSearch,
		Text:     fmt.Sprintf("Great! I found %d product%s for you. Here are the top-rated ones:", len(found), plural),
		Products: found[offset:end],
		Total:    len(found),
		Offset:   offset,
		HasMore:  end < len(found),
	}
}

// SearchProducts searches by the full message first, then falls back to
// per-keyword searches with deduplication. Results rank by rating
// descending; equal ratings keep their discovery order.
func (s *Service) SearchProducts(message string) []models.Product {
	query := strings.TrimSpace(message)
	found := s.searcher.Search(query)

	if len(found) == 0 {
		seen := make(map[string]bool)
		for _, kw := range ExtractKeywords(message) {
			for _, p := range s.searcher.Search(kw) {
				if !seen[p.ID] {
					seen[p.ID] = true
					found = append(found, p)
				}
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Rating > found[j].Rating
	})
	return found
}

// answerQuestion forwards the message to the language model, degrading to a
// canned reply on any failure.
func (s *Service) answerQuestion(ctx context.Context, message string) Reply {
	if s.llm == nil {
		metrics.AssistantFallbacksTotal.Inc()
		return Reply{Intent: IntentQuestion, Text: disabledReply}
	}

	text, err := s.llm.ChatCompletion(ctx, systemPrompt, message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("LLM completion failed, using fallback reply")
		metrics.AssistantFallbacksTotal.Inc()
		return Reply{Intent: IntentQuestion, Text: fallbackReply}
	}

	return Reply{Intent: IntentQuestion, Text: text}
}

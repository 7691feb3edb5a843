// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package assistant

import (
	"regexp"
	"strings"
)

// Intent classifies one chat message.
type Intent string

const (
	// IntentProductSearch routes the message to catalog search.
	IntentProductSearch Intent = "product_search"

	// IntentQuestion routes the message to the language model (or a
	// canned reply when the model is unavailable).
	IntentQuestion Intent = "question"
)

// productSearchMarkers flag shopping intent. Substring match on the
// lowercased message, so "ordered" and "buying" also count.
var productSearchMarkers = []string{
	"order", "buy", "find", "show", "get me", "search",
}

// DetectIntent classifies a message as a product search or an open-ended
// question.
func DetectIntent(message string) Intent {
	m := strings.ToLower(message)
	for _, marker := range productSearchMarkers {
		if strings.Contains(m, marker) {
			return IntentProductSearch
		}
	}
	return IntentQuestion
}

// stopwords are filler words dropped during keyword extraction.
var stopwords = map[string]bool{
	"order": true, "me": true, "show": true, "find": true, "get": true,
	"buy": true, "want": true, "need": true, "looking": true, "for": true,
	"the": true, "a": true, "an": true,
}

var startsWithLetter = regexp.MustCompile(`^[a-z]+`)

// ExtractKeywords pulls the meaningful search terms out of a chat message:
// lowercased words longer than two characters that are not stopwords and
// start with a letter (dropping numbers and stray punctuation tokens).
func ExtractKeywords(message string) []string {
	words := strings.Fields(strings.ToLower(message))
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 2 && !stopwords[w] && startsWithLetter.MatchString(w) {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

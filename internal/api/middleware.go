// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/cradlecart/internal/config"
)

// Middleware builds the configurable middleware used by the router: CORS
// and per-IP rate limiting.
type Middleware struct {
	cfg *config.Config
}

// NewMiddleware creates the middleware factory.
func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// CORS returns the CORS middleware. It must run globally so OPTIONS
// preflight requests are answered on every route.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns the standard per-IP rate limiter for API routes. A
// no-op passthrough is returned when rate limiting is disabled (tests,
// local development).
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.cfg.API.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(m.cfg.API.RateLimitReqs, m.cfg.API.RateLimitWindow)
}

// RateLimitCheckout returns the stricter limiter for order placement. The
// simulated processing delay makes checkout the most expensive endpoint.
func (m *Middleware) RateLimitCheckout() func(http.Handler) http.Handler {
	if m.cfg.API.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	reqs := m.cfg.API.RateLimitReqs / 10
	if reqs < 1 {
		reqs = 1
	}
	return httprate.LimitByIP(reqs, m.cfg.API.RateLimitWindow)
}

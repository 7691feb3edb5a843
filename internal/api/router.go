// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cradlecart/internal/middleware"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, mw *Middleware) *Router {
	return &Router{handler: handler, middleware: mw}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. CORS must be
	// global so OPTIONS preflight requests are answered everywhere.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", router.handler.Health)
		r.Get("/live", router.handler.Live)
		r.Get("/ready", router.handler.Ready)

		r.Get("/categories", router.handler.Categories)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", router.handler.Products)
			r.Get("/{id}", router.handler.ProductByID)
			r.Get("/{id}/recommendations", router.handler.Recommendations)
		})

		r.Get("/search", router.handler.Search)

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", router.handler.CreateCart)
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", router.handler.GetCart)
				r.Delete("/", router.handler.DeleteCart)
				r.Post("/items", router.handler.AddCartItem)
				r.Delete("/items", router.handler.ClearCart)
				r.Put("/items/{productID}", router.handler.UpdateCartItem)
				r.Delete("/items/{productID}", router.handler.RemoveCartItem)
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/plans", router.handler.Plans)
			r.Post("/quote", router.handler.QuoteOrder)

			// Order placement holds a connection for the processing
			// delay, so it gets the stricter limiter.
			r.With(router.middleware.RateLimitCheckout()).Post("/orders", router.handler.PlaceOrder)
			r.Get("/orders", router.handler.Orders)
			r.Get("/orders/{orderID}", router.handler.OrderByID)
		})

		r.Post("/assistant/chat", router.handler.Chat)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

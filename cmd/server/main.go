// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package main is the entry point for the Cradlecart server.
//
// Cradlecart is a baby-products storefront backend: a catalog API with a
// weighted recommendation scorer, filtered free-text search, in-memory
// carts, a simulated subscription checkout, and an optional LLM-backed
// shopping assistant.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from config file and environment (Koanf v2)
//  2. Catalog: seed data loaded from the embedded JSON or CATALOG_PATH
//  3. Recommendation engine and search over the catalog
//  4. Cart store and checkout service
//  5. Assistant: LLM client wired only when ASSISTANT_ENABLED=true with a key
//  6. HTTP server: REST API under /api/v1 plus /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// The assistant degrades gracefully: without ASSISTANT_API_KEY the chat
// endpoint still answers product searches and returns a canned reply for
// open questions.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests (10s timeout),
// then stops the supervisor tree.
//
// # Example Usage
//
// Local development:
//
//	export LOG_FORMAT=console
//	export DISABLE_RATE_LIMIT=true
//	./cradlecart
//
// With the assistant enabled:
//
//	export ASSISTANT_ENABLED=true
//	export ASSISTANT_API_KEY=your-groq-api-key
//	./cradlecart
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cradlecart/internal/api"
	"github.com/tomtom215/cradlecart/internal/assistant"
	"github.com/tomtom215/cradlecart/internal/cart"
	"github.com/tomtom215/cradlecart/internal/catalog"
	"github.com/tomtom215/cradlecart/internal/checkout"
	"github.com/tomtom215/cradlecart/internal/config"
	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/recommend"
	"github.com/tomtom215/cradlecart/internal/search"
	"github.com/tomtom215/cradlecart/internal/supervisor"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Cradlecart")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	searcher := search.NewSearcher(cat)

	carts := cart.NewStore(cart.Config{
		FreeShippingMin: cfg.Cart.FreeShippingMin,
		ShippingFlat:    cfg.Cart.ShippingFlat,
	})

	checkoutSvc := checkout.NewService(cfg.Checkout.ProcessingDelay)

	// The assistant runs in search-only mode without an LLM client.
	var llm *assistant.LLMClient
	if cfg.Assistant.Enabled && cfg.Assistant.APIKey != "" {
		llm = assistant.NewLLMClient(cfg.Assistant)
		logging.Info().Str("model", cfg.Assistant.Model).Msg("Assistant LLM client enabled")
	} else {
		logging.Info().Msg("Assistant LLM disabled - chat runs in search-only mode")
	}
	assistantSvc := assistant.NewService(searcher, llm)

	handler := api.NewHandler(cfg, cat, engine, searcher, carts, checkoutSvc, assistantSvc, version)
	middleware := api.NewMiddleware(cfg)
	router := api.NewRouter(handler, middleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

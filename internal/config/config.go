// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package config defines the typed service configuration and its layered
// Koanf v2 loading: struct defaults, then an optional YAML file, then
// environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cart      CartConfig      `koanf:"cart"`
	Checkout  CheckoutConfig  `koanf:"checkout"`
	Assistant AssistantConfig `koanf:"assistant"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds API behavior settings shared by all route groups.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CatalogConfig holds catalog seed settings.
type CatalogConfig struct {
	// Path points at an operator-supplied JSON seed file. Empty means
	// the embedded demo catalog is used.
	Path string `koanf:"path"`
}

// RecommendConfig holds recommendation limits. The scoring weights
// themselves live in the recommend package config; these are the API-facing
// bounds.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`
}

// CartConfig holds cart pricing rules.
type CartConfig struct {
	// FreeShippingMin is the subtotal above which shipping is free.
	FreeShippingMin int `koanf:"free_shipping_min"`

	// ShippingFlat is the flat shipping charge below the threshold.
	ShippingFlat int `koanf:"shipping_flat"`
}

// CheckoutConfig holds the simulated order-processing settings.
type CheckoutConfig struct {
	// ProcessingDelay simulates payment/fulfillment latency. Orders honor
	// context cancellation during the delay.
	ProcessingDelay time.Duration `koanf:"processing_delay"`
}

// AssistantConfig holds the chat assistant and external LLM API settings.
type AssistantConfig struct {
	// Enabled toggles the LLM path. When disabled (or no API key is set)
	// open-ended questions get a canned fallback reply.
	Enabled bool `koanf:"enabled"`

	// BaseURL is the OpenAI-compatible chat-completions endpoint.
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`

	Temperature float64       `koanf:"temperature"`
	MaxTokens   int           `koanf:"max_tokens"`
	Timeout     time.Duration `koanf:"timeout"`

	// RatePerSecond and Burst bound outbound calls client-side so a chatty
	// shopper cannot exhaust the upstream quota.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks cross-field constraints that koanf unmarshaling cannot
// express. It returns the first violation found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("api.rate_limit_reqs must be >= 1, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window must be positive, got %v", c.API.RateLimitWindow)
		}
	}
	if c.Recommend.DefaultK < 1 {
		return fmt.Errorf("recommend.default_k must be >= 1, got %d", c.Recommend.DefaultK)
	}
	if c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("recommend.max_k (%d) must be >= recommend.default_k (%d)",
			c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	if c.Cart.FreeShippingMin < 0 {
		return fmt.Errorf("cart.free_shipping_min must be >= 0, got %d", c.Cart.FreeShippingMin)
	}
	if c.Cart.ShippingFlat < 0 {
		return fmt.Errorf("cart.shipping_flat must be >= 0, got %d", c.Cart.ShippingFlat)
	}
	if c.Checkout.ProcessingDelay < 0 {
		return fmt.Errorf("checkout.processing_delay must be >= 0, got %v", c.Checkout.ProcessingDelay)
	}
	if c.Assistant.Enabled {
		if c.Assistant.BaseURL == "" {
			return fmt.Errorf("assistant.base_url is required when the assistant is enabled")
		}
		if c.Assistant.Model == "" {
			return fmt.Errorf("assistant.model is required when the assistant is enabled")
		}
		if c.Assistant.Timeout <= 0 {
			return fmt.Errorf("assistant.timeout must be positive, got %v", c.Assistant.Timeout)
		}
	}
	return nil
}

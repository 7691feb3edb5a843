// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package checkout implements the simulated order flow: subscription plans
// with frequency-tiered discounts for essential products, price quoting,
// and order placement with a configurable processing delay.
//
// No payment or fulfillment happens; orders are recorded in memory for the
// lifetime of the process.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/metrics"
	"github.com/tomtom215/cradlecart/internal/models"
)

var (
	// ErrUnknownPlan is returned when a requested subscription frequency
	// does not exist.
	ErrUnknownPlan = errors.New("unknown subscription plan")

	// ErrNotSubscribable is returned when a subscription is requested for
	// a product outside the essentials list.
	ErrNotSubscribable = errors.New("product is not eligible for subscription")

	// ErrAddressRequired is returned when an order is placed without a
	// delivery address.
	ErrAddressRequired = errors.New("delivery address is required")
)

// Plan is one subscription frequency tier.
type Plan struct {
	Frequency   string `json:"frequency"`
	DiscountPct int    `json:"discount_pct"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Plans returns the fixed subscription tiers, cheapest discount first.
func Plans() []Plan {
	return []Plan{
		{Frequency: "weekly", DiscountPct: 5, Label: "Weekly", Description: "Every 7 days"},
		{Frequency: "bi-weekly", DiscountPct: 8, Label: "Bi-Weekly", Description: "Every 14 days"},
		{Frequency: "monthly", DiscountPct: 10, Label: "Monthly", Description: "Every 30 days"},
		{Frequency: "bi-monthly", DiscountPct: 12, Label: "Bi-Monthly", Description: "Every 60 days"},
	}
}

// essentialKeywords marks products eligible for subscription: consumables a
// household reorders on a schedule. Matched as case-insensitive substrings
// of the product name.
var essentialKeywords = []string{
	"diaper", "formula", "cereal", "wipes", "powder", "oil", "soap", "shampoo",
}

// Subscribable reports whether the product can be bought on subscription.
func Subscribable(p models.Product) bool {
	name := strings.ToLower(p.Name)
	for _, k := range essentialKeywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// Quote is the priced outcome of one order request.
type Quote struct {
	Product      models.Product `json:"product"`
	Quantity     int            `json:"quantity"`
	Subscription *Plan          `json:"subscription,omitempty"`

	// UnitPrice is the per-unit price after any subscription discount,
	// rounded to the nearest whole unit.
	UnitPrice int `json:"unit_price"`

	// Savings is the per-order amount saved by the subscription discount.
	Savings int `json:"savings"`

	Total int `json:"total"`
}

// Order is one placed (simulated) order.
type Order struct {
	ID       string    `json:"id"`
	Quote    Quote     `json:"quote"`
	Address  string    `json:"address"`
	PlacedAt time.Time `json:"placed_at"`
}

// Service quotes and places orders.
type Service struct {
	processingDelay time.Duration

	mu     sync.RWMutex
	orders []Order

	logger zerolog.Logger
}

// NewService creates a checkout Service. processingDelay simulates the
// payment round-trip during PlaceOrder.
func NewService(processingDelay time.Duration) *Service {
	return &Service{
		processingDelay: processingDelay,
		logger:          logging.With().Str("component", "checkout").Logger(),
	}
}

// QuoteOrder prices an order for quantity units of product, optionally on a
// subscription plan. Quantity below 1 is treated as 1.
func (s *Service) QuoteOrder(product models.Product, quantity int, frequency string) (Quote, error) {
	if quantity < 1 {
		quantity = 1
	}

	q := Quote{
		Product:   product,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}

	if frequency != "" {
		if !Subscribable(product) {
			return Quote{}, fmt.Errorf("%w: %s", ErrNotSubscribable, product.ID)
		}
		plan, ok := planByFrequency(frequency)
		if !ok {
			return Quote{}, fmt.Errorf("%w: %q", ErrUnknownPlan, frequency)
		}
		q.Subscription = &plan

		discounted := float64(product.Price) * (1 - float64(plan.DiscountPct)/100)
		q.UnitPrice = int(math.Round(discounted))
		q.Savings = (product.Price - q.UnitPrice) * quantity
	}

	q.Total = q.UnitPrice * quantity
	return q, nil
}

// PlaceOrder quotes and records an order after the simulated processing
// delay. A delivery address is mandatory; quoting stays address-free so the
// storefront can preview prices before the form is filled in. The delay
// honors context cancellation so abandoned requests do not leave work
// behind.
func (s *Service) PlaceOrder(ctx context.Context, product models.Product, quantity int, frequency, address string) (Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Order{}, ErrAddressRequired
	}

	quote, err := s.QuoteOrder(product, quantity, frequency)
	if err != nil {
		return Order{}, err
	}

	if s.processingDelay > 0 {
		timer := time.NewTimer(s.processingDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Order{}, ctx.Err()
		}
	}

	order := Order{
		ID:       uuid.New().String(),
		Quote:    quote,
		Address:  address,
		PlacedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	subscription := "none"
	if quote.Subscription != nil {
		subscription = quote.Subscription.Frequency
	}
	metrics.OrdersPlacedTotal.WithLabelValues(subscription).Inc()

	s.logger.Info().
		Str("order_id", order.ID).
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Str("subscription", subscription).
		Int("total", quote.Total).
		Msg("Order placed")

	return order, nil
}

// Orders returns all placed orders, oldest first.
func (s *Service) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID returns one placed order.
func (s *Service) OrderByID(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func planByFrequency(frequency string) (Plan, bool) {
	for _, p := range Plans() {
		if p.Frequency == frequency {
			return p, true
		}
	}
	return Plan{}, false
}

// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

// Package cart implements per-cart shopping state: an in-memory store of
// carts keyed by server-assigned UUID, with quantity-grouped line items and
// a priced summary (subtotal, shipping, total).
//
// Carts are demo-scoped: they live for the process lifetime and are never
// persisted.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/metrics"
	"github.com/tomtom215/cradlecart/internal/models"
)

// ErrCartNotFound is returned for operations on an unknown cart id.
var ErrCartNotFound = errors.New("cart not found")

// Item is one quantity-grouped cart line.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Summary is the priced view of one cart.
type Summary struct {
	CartID    string    `json:"cart_id"`
	Items     []Item    `json:"items"`
	ItemCount int       `json:"item_count"`
	Subtotal  int       `json:"subtotal"`
	Shipping  int       `json:"shipping"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// cartState holds one cart's lines in insertion order.
type cartState struct {
	items     []Item
	updatedAt time.Time
}

// Config holds the cart pricing rules.
type Config struct {
	// FreeShippingMin: shipping is free when the subtotal strictly
	// exceeds this value.
	FreeShippingMin int

	// ShippingFlat is the flat charge applied otherwise. Empty carts
	// still price shipping at the flat rate; the storefront only shows
	// totals for non-empty carts.
	ShippingFlat int
}

// Store is the thread-safe in-memory cart store.
type Store struct {
	mu     sync.RWMutex
	carts  map[string]*cartState
	cfg    Config
	logger zerolog.Logger
}

// NewStore creates an empty Store with the given pricing rules.
func NewStore(cfg Config) *Store {
	return &Store{
		carts:  make(map[string]*cartState),
		cfg:    cfg,
		logger: logging.With().Str("component", "cart").Logger(),
	}
}

// Create allocates a new empty cart and returns its id.
func (s *Store) Create() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.carts[id] = &cartState{updatedAt: time.Now().UTC()}
	s.mu.Unlock()

	metrics.CartOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Debug().Str("cart_id", id).Msg("Cart created")
	return id
}

// Delete removes a cart entirely.
func (s *Store) Delete(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cartID]; !ok {
		return ErrCartNotFound
	}
	delete(s.carts, cartID)
	return nil
}

// AddItem adds quantity units of a product to the cart, merging into an
// existing line for the same product id. Quantity below 1 is treated as 1.
func (s *Store) AddItem(cartID string, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			c.updatedAt = time.Now().UTC()
			metrics.CartOperationsTotal.WithLabelValues("add").Inc()
			return nil
		}
	}

	c.items = append(c.items, Item{Product: product, Quantity: quantity})
	c.updatedAt = time.Now().UTC()
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return nil
}

// UpdateQuantity sets the quantity of one line. A quantity of zero or less
// removes the line, matching the storefront's stepper behavior.
func (s *Store) UpdateQuantity(cartID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(cartID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.updatedAt = time.Now().UTC()
			metrics.CartOperationsTotal.WithLabelValues("update").Inc()
			return nil
		}
	}

	// Updating an absent line is a no-op, not an error: the storefront
	// treats it the same as quantity 0.
	return nil
}

// RemoveItem drops a product's line from the cart. Removing an absent
// product is a no-op.
func (s *Store) RemoveItem(cartID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.updatedAt = time.Now().UTC()
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return nil
}

// Clear removes every line but keeps the cart itself.
func (s *Store) Clear(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	c.items = nil
	c.updatedAt = time.Now().UTC()
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return nil
}

// Summary returns the priced view of one cart: lines in insertion order,
// total unit count, subtotal, shipping and total.
func (s *Store) Summary(cartID string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[cartID]
	if !ok {
		return Summary{}, ErrCartNotFound
	}

	items := make([]Item, len(c.items))
	copy(items, c.items)

	var subtotal, count int
	for _, it := range items {
		subtotal += it.Product.Price * it.Quantity
		count += it.Quantity
	}

	shipping := s.cfg.ShippingFlat
	if subtotal > s.cfg.FreeShippingMin {
		shipping = 0
	}

	return Summary{
		CartID:    cartID,
		Items:     items,
		ItemCount: count,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
		UpdatedAt: c.updatedAt,
	}, nil
}

// Items returns the cart's lines in insertion order.
func (s *Store) Items(cartID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items, nil
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cart provides the Valkey-backed shopping cart. Carts are
// stored as JSON keyed by session id with a sliding TTL, so abandoned
// carts expire on their own.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces cart keys in Valkey.
	keyPrefix = "cart:"

	// DefaultTTL is how long an untouched cart survives.
	DefaultTTL = 48 * time.Hour
)

// Line is one cart entry.
type Line struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"` // unit price in minor units
	Quantity  int    `json:"quantity"`
}

// Cart is the full cart payload for one session.
type Cart struct {
	Lines     []Line    `json:"lines"`
	Coupon    string    `json:"coupon,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Count returns the total item quantity across all lines.
func (c *Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return c.Count() == 0
}

// Subtotal returns the cart total in minor units before discounts.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// Store manages cart persistence in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a cart store backed by the given Valkey client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Get loads the cart for a session id. A missing or unreadable cart
// comes back empty — storefront pages must never fail on cart state.
func (s *Store) Get(ctx context.Context, sessionID string) *Cart {
	if sessionID == "" {
		return &Cart{}
	}

	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &Cart{}
	}
	if err != nil {
		slog.Warn("cart get error", "error", err)
		return &Cart{}
	}

	var c Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		slog.Warn("cart decode error", "error", err)
		return &Cart{}
	}
	return &c
}

// Save persists the cart and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	c.UpdatedAt = time.Now()
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart store: %w", err)
	}
	return nil
}

// AddLine adds quantity of a product, merging with an existing line.
func (s *Store) AddLine(ctx context.Context, sessionID string, line Line) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return c, s.Save(ctx, sessionID, c)
		}
	}
	c.Lines = append(c.Lines, line)
	return c, s.Save(ctx, sessionID, c)
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return c, s.Save(ctx, sessionID, c)
	}
	return c, nil
}

// ApplyCoupon records a coupon code on the cart. Validation is left to
// the checkout flow.
func (s *Store) ApplyCoupon(ctx context.Context, sessionID, code string) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	c.Coupon = code
	return c, s.Save(ctx, sessionID, c)
}

// Clear deletes the cart entirely (after checkout completes).
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

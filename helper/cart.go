package helper

import (
	"sync"
	"time"
)

type CartLine struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	CategoryKey string  `json:"categoryKey"`
	Image       string  `json:"image,omitempty"`
	Qty         int     `json:"qty"`
}

// Cart is the snapshot returned to handlers. Subtotal and the promo discount
// are recomputed from the lines on every read.
type Cart struct {
	Lines    []CartLine    `json:"lines"`
	Promo    *AppliedPromo `json:"promo,omitempty"`
	Subtotal float64       `json:"subtotal"`
}

type cartState struct {
	lines     []CartLine
	promo     *AppliedPromo
	updatedAt time.Time
}

// CartStore holds in-progress orders keyed by session token. State lives for
// one browsing session only; there is no persistence contract. The store is
// constructed in main and injected into its handlers.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*cartState
	ttl   time.Duration
}

func NewCartStore() *CartStore {
	s := &CartStore{
		carts: make(map[string]*cartState),
		ttl:   24 * time.Hour,
	}
	go s.janitor()
	return s
}

func (s *CartStore) janitor() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for token, cart := range s.carts {
			if cart.updatedAt.Before(cutoff) {
				delete(s.carts, token)
			}
		}
		s.mu.Unlock()
	}
}

// CartSubtotal is the pure subtotal over a set of lines.
func CartSubtotal(lines []CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Price * float64(line.Qty)
	}
	return Round2(total)
}

func (s *CartStore) state(token string) *cartState {
	cart, ok := s.carts[token]
	if !ok {
		cart = &cartState{}
		s.carts[token] = cart
	}
	cart.updatedAt = time.Now()
	return cart
}

func (c *cartState) snapshot() Cart {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	subtotal := CartSubtotal(lines)

	var promo *AppliedPromo
	if c.promo != nil && len(lines) > 0 {
		promo = &AppliedPromo{
			Code:     c.promo.Code,
			Type:     c.promo.Type,
			Value:    c.promo.Value,
			Discount: ComputeDiscount(c.promo.Type, c.promo.Value, subtotal),
		}
	}

	return Cart{Lines: lines, Promo: promo, Subtotal: subtotal}
}

// lineIndex finds a line by its identity key (name, categoryKey).
func (c *cartState) lineIndex(name, categoryKey string) int {
	for i, line := range c.lines {
		if line.Name == name && line.CategoryKey == categoryKey {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line or appends a new one
// with qty 1. No two lines ever share an identity key.
func (s *CartStore) AddItem(token string, line CartLine) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.state(token)
	if i := cart.lineIndex(line.Name, line.CategoryKey); i >= 0 {
		cart.lines[i].Qty++
	} else {
		line.Qty = 1
		cart.lines = append(cart.lines, line)
	}
	return cart.snapshot()
}

// UpdateQty replaces a line's quantity; qty <= 0 removes the line entirely.
// Emptying the cart this way drops the applied promo, same as Clear.
func (s *CartStore) UpdateQty(token, name, categoryKey string, qty int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.state(token)
	i := cart.lineIndex(name, categoryKey)
	if i < 0 {
		return cart.snapshot()
	}
	if qty <= 0 {
		cart.lines = append(cart.lines[:i], cart.lines[i+1:]...)
		if len(cart.lines) == 0 {
			cart.promo = nil
		}
	} else {
		cart.lines[i].Qty = qty
	}
	return cart.snapshot()
}

func (s *CartStore) RemoveItem(token, name, categoryKey string) Cart {
	return s.UpdateQty(token, name, categoryKey, 0)
}

// Clear empties the cart and drops any applied promotion.
func (s *CartStore) Clear(token string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.state(token)
	cart.lines = nil
	cart.promo = nil
	return cart.snapshot()
}

func (s *CartStore) SetPromo(token string, promo *AppliedPromo) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.state(token)
	cart.promo = promo
	return cart.snapshot()
}

func (s *CartStore) Get(token string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(token).snapshot()
}

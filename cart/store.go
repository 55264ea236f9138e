package cart

import (
	"sync"
	"time"
)

// Item is one line of a shopper's cart. Product fields are copied in at
// add time so the cart keeps showing what the shopper actually picked.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type sessionCart struct {
	items   []Item
	touched time.Time
}

// Store holds one cart per shopper session, in memory only. Carts live for
// the session TTL and disappear on expiry; nothing is written to the
// database until the shopper submits an order.
type Store struct {
	mu    sync.Mutex
	carts map[string]*sessionCart
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		carts: make(map[string]*sessionCart),
		ttl:   ttl,
	}
}

// AddItem merges a product into the session's cart: an existing line for
// the same product id gains one unit, otherwise a new line with quantity 1
// is appended.
func (s *Store) AddItem(sessionID string, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(sessionID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem drops a cart line unconditionally; unknown ids are a no-op.
func (s *Store) RemoveItem(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Items returns a copy of the session's cart lines in insertion order.
// Callers may hold on to the slice; later cart mutations will not touch it.
func (s *Store) Items(sessionID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed from the current lines on every read; it is never
// stored, so it cannot drift from the items.
func (s *Store) Total(sessionID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.cart(sessionID).items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// cart returns the live cart for a session, creating it if needed and
// sweeping out expired sessions along the way. Callers must hold s.mu.
func (s *Store) cart(sessionID string) *sessionCart {
	now := time.Now()
	for id, c := range s.carts {
		if now.Sub(c.touched) > s.ttl {
			delete(s.carts, id)
		}
	}

	c, ok := s.carts[sessionID]
	if !ok {
		c = &sessionCart{}
		s.carts[sessionID] = c
	}
	c.touched = now
	return c
}

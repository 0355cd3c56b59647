// Package cart holds the in-memory shopping cart for a session. Carts are
// never persisted: a process restart empties them, which is the accepted
// contract of the storefront.
package cart

import "sync"

// Line is one product selection. Name, image and unit price are snapshotted
// from the catalog when the line is added and never refreshed afterwards.
type Line struct {
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	UnitPrice        float64 `json:"price"`
	QuantitySelected uint    `json:"quantity_selected"`
	Images           string  `json:"images"`
}

// Store is the sole mutable source of truth for one session's cart contents.
// Lines keep insertion order. Adding the same product twice yields two
// independent lines; there is no merge by product id.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add appends the line to the end of the cart.
func (s *Store) Add(line Line) {
	if line.QuantitySelected < 1 {
		line.QuantitySelected = 1
	}
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

// Remove drops every line whose product id matches. Removing an absent
// product is a no-op.
func (s *Store) Remove(productID uint) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.mu.Unlock()
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

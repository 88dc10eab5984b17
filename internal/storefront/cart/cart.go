// Package cart holds the shopper's cart: an insertion-ordered list of
// (product, quantity) lines with at most one line per product. Every
// mutation writes through to the persistence store; the in-memory state
// stays authoritative when a write fails.
package cart

import (
	"io"
	"log"
	"sync"

	"techmobile/internal/domain"
	"techmobile/internal/storefront/kv"
)

// StorageKey is the persistence key, matching the web client's
// localStorage key.
const StorageKey = "cart"

// Line pairs a product snapshot with a quantity. Quantity is always >= 1
// while the line exists.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Service is the cart domain service. Construct once at startup with New;
// it rehydrates from the store before it is handed to consumers.
type Service struct {
	mu        sync.Mutex
	store     kv.Store
	logger    *log.Logger
	lines     []Line
	observers []func()
}

// New builds a Service backed by store. A failed or absent load degrades
// to an empty cart.
func New(store kv.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{store: store, logger: logger}

	var lines []Line
	if err := store.Load(StorageKey, &lines); err != nil {
		s.logger.Printf("cart: starting empty: %v", err)
		lines = nil
	}
	s.lines = lines
	return s
}

// OnChange registers fn to run after every successful mutation.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// AddItem merges qty into the existing line for the product, or appends a
// new line. A qty below 1 counts as 1.
func (s *Service) AddItem(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{Product: p, Quantity: qty})
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// RemoveItem deletes the line for productID. No-op when absent.
func (s *Service) RemoveItem(productID string) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateQuantity applies delta to the line for productID. The quantity is
// clamped at 1: a line never drops to zero here, only RemoveItem deletes
// it. No-op when the line is absent.
func (s *Service) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			next := s.lines[i].Quantity + delta
			if next < 1 {
				next = 1
			}
			s.lines[i].Quantity = next
			break
		}
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Clear empties the cart, e.g. after checkout.
func (s *Service) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Count is the sum of quantities across all lines.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is the sum of price x quantity in cents, using each line's
// captured product price.
func (s *Service) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, line := range s.lines {
		total += line.Product.PriceCents * int64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// persistLocked writes the full cart through to the store. Failures are
// logged and swallowed: persistence is a best-effort mirror.
func (s *Service) persistLocked() {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	if err := s.store.Save(StorageKey, lines); err != nil {
		s.logger.Printf("cart: persist failed: %v", err)
	}
}

func (s *Service) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

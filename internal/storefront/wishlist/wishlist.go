// Package wishlist holds the shopper's saved products: a set keyed by
// product ID with stable insertion order for display. Mutations write
// through to the persistence store.
package wishlist

import (
	"io"
	"log"
	"sync"

	"techmobile/internal/domain"
	"techmobile/internal/storefront/kv"
)

// StorageKey is the persistence key, matching the web client's
// localStorage key.
const StorageKey = "wishlist"

// Service is the wishlist domain service.
type Service struct {
	mu        sync.Mutex
	store     kv.Store
	logger    *log.Logger
	items     []domain.Product
	observers []func()
}

// New builds a Service backed by store. A failed or absent load degrades
// to an empty wishlist.
func New(store kv.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{store: store, logger: logger}

	var items []domain.Product
	if err := store.Load(StorageKey, &items); err != nil {
		s.logger.Printf("wishlist: starting empty: %v", err)
		items = nil
	}
	s.items = items
	return s
}

// OnChange registers fn to run after every successful mutation.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Add inserts the product unless it is already saved. Idempotent.
func (s *Service) Add(p domain.Product) {
	s.mu.Lock()
	if s.indexLocked(p.ID) < 0 {
		s.items = append(s.items, p)
		s.persistLocked()
	}
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the product with productID. No-op when absent.
func (s *Service) Remove(productID string) {
	s.mu.Lock()
	if i := s.indexLocked(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persistLocked()
	}
	s.mu.Unlock()
	s.notify()
}

// Toggle removes the product when present, adds it otherwise. The decision
// is made once, against membership at call time.
func (s *Service) Toggle(p domain.Product) {
	s.mu.Lock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items = append(s.items, p)
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Contains reports membership by product ID.
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(productID) >= 0
}

// Clear empties the wishlist.
func (s *Service) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Size is the number of saved products.
func (s *Service) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the saved products in insertion order.
func (s *Service) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) indexLocked(productID string) int {
	for i, p := range s.items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Service) persistLocked() {
	items := s.items
	if items == nil {
		items = []domain.Product{}
	}
	if err := s.store.Save(StorageKey, items); err != nil {
		s.logger.Printf("wishlist: persist failed: %v", err)
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

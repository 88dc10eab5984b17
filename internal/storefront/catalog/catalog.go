// Package catalog holds the product list fetched from the backend and the
// filter/sort engine that turns it into a display list.
package catalog

import (
	"sync"

	"techmobile/internal/domain"
)

// Store holds the full catalog in its natural (fetch) order. It is
// populated once per session and read by the filter engine.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewStore() *Store {
	return &Store{}
}

// SetProducts replaces the catalog with the fetched list.
func (s *Store) SetProducts(products []domain.Product) {
	s.mu.Lock()
	s.products = make([]domain.Product, len(products))
	copy(s.products, products)
	s.mu.Unlock()
}

// Products returns a copy of the catalog in fetch order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len is the catalog size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Display applies f to the catalog.
func (s *Store) Display(f FilterState) []domain.Product {
	s.mu.RLock()
	products := s.products
	s.mu.RUnlock()
	return Apply(products, f)
}

// BrandOptions derives the brand filter options for the current category.
func (s *Store) BrandOptions(category string) []string {
	s.mu.RLock()
	products := s.products
	s.mu.RUnlock()
	return Brands(products, category)
}

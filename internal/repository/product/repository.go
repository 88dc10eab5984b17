package product

import (
	"context"

	"techmobile/internal/domain"
)

type Repository interface {
	// List returns products, newest first. An empty category returns the
	// full catalog.
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Upsert inserts or updates keyed on (brand, title). Used by seed and
	// the bulk importer.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"techmobile/internal/domain"
	productrepo "techmobile/internal/repository/product"
)

// Service exposes catalog reads and admin product creation.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog, optionally narrowed to one category. An unknown
// category is not an error; it simply matches nothing.
func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateInput carries the fields of the admin product form.
type CreateInput struct {
	Title              string
	Brand              string
	Category           string
	PriceCents         int64
	OriginalPriceCents *int64
	Image              string
	Description        string
	Specs              *domain.ProductSpecs
	Badges             []string
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Category = strings.TrimSpace(strings.ToLower(in.Category))
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Title == "":
		return nil, errors.New("title required")
	case in.Brand == "":
		return nil, errors.New("brand required")
	case in.Image == "":
		return nil, errors.New("image required")
	case in.Description == "":
		return nil, errors.New("description required")
	}
	if !domain.ValidCategory(in.Category) {
		return nil, fmt.Errorf("invalid category %q", in.Category)
	}
	if in.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}
	if in.OriginalPriceCents != nil && *in.OriginalPriceCents < in.PriceCents {
		return nil, errors.New("original price must not be below price")
	}

	return s.repo.Create(ctx, domain.Product{
		Title:              in.Title,
		Brand:              in.Brand,
		Category:           in.Category,
		PriceCents:         in.PriceCents,
		OriginalPriceCents: in.OriginalPriceCents,
		Image:              in.Image,
		Description:        in.Description,
		Specs:              in.Specs,
		Badges:             in.Badges,
	})
}

package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"techmobile/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a JSON array of catalog products and upserts them.
// Used for bulk-loading a catalog export instead of entering products one
// at a time through the admin form.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

type productRow struct {
	Title              string               `json:"title"`
	Brand              string               `json:"brand"`
	Category           string               `json:"category"`
	PriceCents         int64                `json:"priceCents"`
	OriginalPriceCents *int64               `json:"originalPriceCents"`
	Image              string               `json:"image"`
	Description        string               `json:"description"`
	Specs              *domain.ProductSpecs `json:"specs"`
	Badges             []string             `json:"badges"`
}

// Run parses the input and upserts each product, returning the count.
// The first invalid row aborts the import.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var rows []productRow
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode products: %w", err)
	}

	imported := 0
	for _, row := range rows {
		if err := validateRow(row); err != nil {
			return imported, err
		}
		p := domain.Product{
			Title:              row.Title,
			Brand:              row.Brand,
			Category:           row.Category,
			PriceCents:         row.PriceCents,
			OriginalPriceCents: row.OriginalPriceCents,
			Image:              row.Image,
			Description:        row.Description,
			Specs:              row.Specs,
			Badges:             row.Badges,
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", row.Title, err)
		}
		imported++
	}
	return imported, nil
}

func validateRow(row productRow) error {
	if row.Title == "" || row.Brand == "" || row.Image == "" || row.Description == "" {
		return fmt.Errorf("invalid product row (missing required fields) for title %q", row.Title)
	}
	if !domain.ValidCategory(row.Category) {
		return fmt.Errorf("invalid category %q for title %q", row.Category, row.Title)
	}
	if row.PriceCents < 0 {
		return fmt.Errorf("negative price for title %q", row.Title)
	}
	if row.OriginalPriceCents != nil && *row.OriginalPriceCents < row.PriceCents {
		return fmt.Errorf("original price below price for title %q", row.Title)
	}
	return nil
}

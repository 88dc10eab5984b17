package seed

import (
	"context"
	"fmt"
	"log"

	"techmobile/internal/domain"
	productrepo "techmobile/internal/repository/product"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply upserts the demo catalog for manual testing. It is idempotent via
// the (brand, title) conflict target.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	repo := productrepo.NewPostgres(pool, logger)
	for _, p := range demoCatalog() {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
	}
	return nil
}

func cents(v int64) *int64 { return &v }

func demoCatalog() []domain.Product {
	return []domain.Product{
		{
			Title:              "Galaxy S24 Ultra",
			Brand:              "Samsung",
			Category:           domain.CategorySmartphones,
			PriceCents:         119900,
			OriginalPriceCents: cents(129900),
			Image:              "https://images.techmobile.dev/products/galaxy-s24-ultra.webp",
			Description:        "Flagship smartphone with a 200MP camera and built-in S Pen.",
			Specs: &domain.ProductSpecs{
				Storage: "256GB",
				RAM:     "12GB",
				Camera:  "200MP + 50MP + 12MP + 10MP",
				Battery: "5000mAh",
			},
			Badges: []string{"Bestseller", "Sale"},
		},
		{
			Title:       "iPhone 15 Pro",
			Brand:       "Apple",
			Category:    domain.CategorySmartphones,
			PriceCents:  99900,
			Image:       "https://images.techmobile.dev/products/iphone-15-pro.webp",
			Description: "Titanium design, A17 Pro chip, and a customizable Action button.",
			Specs: &domain.ProductSpecs{
				Storage: "128GB",
				RAM:     "8GB",
				Camera:  "48MP + 12MP + 12MP",
				Battery: "3274mAh",
			},
			Badges: []string{"New"},
		},
		{
			Title:              "Pixel 8",
			Brand:              "Google",
			Category:           domain.CategorySmartphones,
			PriceCents:         59900,
			OriginalPriceCents: cents(69900),
			Image:              "https://images.techmobile.dev/products/pixel-8.webp",
			Description:        "Compact flagship with the Tensor G3 chip and seven years of updates.",
			Specs: &domain.ProductSpecs{
				Storage: "128GB",
				RAM:     "8GB",
				Camera:  "50MP + 12MP",
				Battery: "4575mAh",
			},
			Badges: []string{"Sale"},
		},
		{
			Title:              "WH-1000XM5",
			Brand:              "Sony",
			Category:           domain.CategoryAudio,
			PriceCents:         34900,
			OriginalPriceCents: cents(39900),
			Image:              "https://images.techmobile.dev/products/wh-1000xm5.webp",
			Description:        "Industry-leading noise cancelling over-ear headphones.",
			Specs:              &domain.ProductSpecs{Battery: "30h playback"},
			Badges:             []string{"Bestseller"},
		},
		{
			Title:       "Flip 6",
			Brand:       "JBL",
			Category:    domain.CategoryAudio,
			PriceCents:  12900,
			Image:       "https://images.techmobile.dev/products/jbl-flip-6.webp",
			Description: "Portable waterproof speaker with punchy bass.",
			Specs:       &domain.ProductSpecs{Battery: "12h playback"},
		},
		{
			Title:       "Watch Series 9",
			Brand:       "Apple",
			Category:    domain.CategoryWearables,
			PriceCents:  42900,
			Image:       "https://images.techmobile.dev/products/watch-series-9.webp",
			Description: "Brighter display, faster chip, and the double-tap gesture.",
			Specs:       &domain.ProductSpecs{Battery: "18h"},
			Badges:      []string{"New"},
		},
		{
			Title:              "Galaxy Tab S9",
			Brand:              "Samsung",
			Category:           domain.CategoryTablets,
			PriceCents:         79900,
			OriginalPriceCents: cents(84900),
			Image:              "https://images.techmobile.dev/products/galaxy-tab-s9.webp",
			Description:        "11-inch AMOLED tablet with included S Pen.",
			Specs: &domain.ProductSpecs{
				Storage: "128GB",
				RAM:     "8GB",
				Battery: "8400mAh",
			},
		},
		{
			Title:       "MagSafe Charger",
			Brand:       "Apple",
			Category:    domain.CategoryAccessories,
			PriceCents:  3900,
			Image:       "https://images.techmobile.dev/products/magsafe-charger.webp",
			Description: "Snap-on wireless charging up to 15W.",
		},
	}
}

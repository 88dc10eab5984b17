package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"techmobile/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, title, brand, category, price_cents, original_price_cents, image, description, specs, badges, created_at`

func (r *postgresRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC, id DESC
`
	args := []any{}
	if category != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at DESC, id DESC
`
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list category=%q error=%v", category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows category=%q error=%v", category, err)
		return nil, err
	}
	r.logger.Printf("product repo: list category=%q count=%d", category, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	specs, badges, err := encodeJSONFields(p)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO products (title, brand, category, price_cents, original_price_cents, image, description, specs, badges)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, COALESCE($9::jsonb, '[]'::jsonb))
RETURNING id::text, created_at
`
	err = r.pool.QueryRow(ctx, q,
		p.Title, p.Brand, p.Category, p.PriceCents, p.OriginalPriceCents,
		p.Image, p.Description, specs, badges,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create title=%q brand=%q error=%v", p.Title, p.Brand, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s title=%q", p.ID, p.Title)
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	specs, badges, err := encodeJSONFields(p)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO products (title, brand, category, price_cents, original_price_cents, image, description, specs, badges)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, COALESCE($9::jsonb, '[]'::jsonb))
ON CONFLICT (brand, title) DO UPDATE SET
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    original_price_cents = EXCLUDED.original_price_cents,
    image = EXCLUDED.image,
    description = EXCLUDED.description,
    specs = EXCLUDED.specs,
    badges = EXCLUDED.badges
RETURNING id::text, created_at
`
	err = r.pool.QueryRow(ctx, q,
		p.Title, p.Brand, p.Category, p.PriceCents, p.OriginalPriceCents,
		p.Image, p.Description, specs, badges,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert title=%q brand=%q error=%v", p.Title, p.Brand, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s title=%q", p.ID, p.Title)
	return &p, nil
}

func encodeJSONFields(p domain.Product) (specs, badges []byte, err error) {
	if p.Specs != nil {
		specs, err = json.Marshal(p.Specs)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal specs: %w", err)
		}
	}
	if p.Badges != nil {
		badges, err = json.Marshal(p.Badges)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal badges: %w", err)
		}
	}
	return specs, badges, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p         domain.Product
		specsRaw  []byte
		badgesRaw []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Brand, &p.Category, &p.PriceCents,
		&p.OriginalPriceCents, &p.Image, &p.Description, &specsRaw, &badgesRaw, &p.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	if len(specsRaw) > 0 {
		var specs domain.ProductSpecs
		if err := json.Unmarshal(specsRaw, &specs); err == nil && specs != (domain.ProductSpecs{}) {
			p.Specs = &specs
		}
	}
	if len(badgesRaw) > 0 {
		var badges []string
		if err := json.Unmarshal(badgesRaw, &badges); err == nil && len(badges) > 0 {
			p.Badges = badges
		}
	}
	return p, nil
}

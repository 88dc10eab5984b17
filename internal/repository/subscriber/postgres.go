package subscriber

import (
	"context"
	"errors"
	"io"
	"log"

	"techmobile/internal/domain"
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

func (r *postgresRepo) Create(ctx context.Context, email string) (*domain.Subscriber, error) {
	const q = `
INSERT INTO subscribers (email)
VALUES ($1)
RETURNING id::text, created_at
`
	s := domain.Subscriber{Email: email}
	err := r.pool.QueryRow(ctx, q, email).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("subscriber repo: create email=%s error=%v", email, err)
		return nil, err
	}
	r.logger.Printf("subscriber repo: created id=%s email=%s", s.ID, s.Email)
	return &s, nil
}

package subscriber

import (
	"context"
	"os"
	"testing"

	"techmobile/internal/domain"
	"techmobile/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_CreateAndDuplicate(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)

	sub, err := repo.Create(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID == "" || sub.Email != "ada@example.com" {
		t.Fatalf("unexpected subscriber %+v", sub)
	}

	if _, err := repo.Create(ctx, "ada@example.com"); err != domain.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE tokens, subscribers, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}

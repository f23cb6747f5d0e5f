package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"shoppico/internal/domain"
	"shoppico/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_GetByIDAndList(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO products (sku, name, category, price_cents, image_url)
VALUES ('SKU-TEST-1', 'Test Shirt', 'apparel', 1999, 'https://cdn.example.com/shirt.png')
RETURNING id::text
`).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool, nil)

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SKU != "SKU-TEST-1" || got.PriceCents != 1999 || got.Category != "apparel" {
		t.Fatalf("unexpected product %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPostgres_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	repo := NewPostgres(pool, nil)
	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
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
	return pool
}

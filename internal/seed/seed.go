package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	SKU        string
	Name       string
	Category   string
	PriceCents int64
	ImageURL   string
}

// Apply inserts a demo catalog for manual testing. It is idempotent via
// ON CONFLICT on the SKU.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			SKU:        "SKU-TEE-CLASSIC",
			Name:       "Classic Tee",
			Category:   "apparel",
			PriceCents: 1999,
			ImageURL:   "https://cdn.shoppico.dev/products/classic-tee.png",
		},
		{
			SKU:        "SKU-MUG-LOGO",
			Name:       "Logo Mug",
			Category:   "kitchen",
			PriceCents: 1299,
			ImageURL:   "https://cdn.shoppico.dev/products/logo-mug.png",
		},
		{
			SKU:        "SKU-TOTE-CANVAS",
			Name:       "Canvas Tote",
			Category:   "accessories",
			PriceCents: 1599,
			ImageURL:   "https://cdn.shoppico.dev/products/canvas-tote.png",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (sku, name, category, price_cents, image_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, p.SKU, p.Name, p.Category, p.PriceCents, p.ImageURL)
	return err
}

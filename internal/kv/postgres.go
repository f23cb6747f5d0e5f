package kv

import (
	"context"
	"errors"

	"shoppico/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by the cart_blobs table.
func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT blob
FROM cart_blobs
WHERE key = $1
`
	var blob []byte
	if err := s.pool.QueryRow(ctx, q, key).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return blob, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, blob []byte) error {
	const q = `
INSERT INTO cart_blobs (key, blob, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    blob = EXCLUDED.blob,
    updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, key, blob)
	return err
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	const q = `
DELETE FROM cart_blobs
WHERE key = $1
`
	_, err := s.pool.Exec(ctx, q, key)
	return err
}

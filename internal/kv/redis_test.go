package kv

import (
	"context"
	"errors"
	"os"
	"testing"

	"shoppico/internal/domain"
)

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := DialRedis(ctx, addr)
	if err != nil {
		t.Fatalf("dial redis: %v", err)
	}
	defer client.Close()

	store := NewRedis(client)
	const key = "cart_kv_test"
	defer store.Delete(ctx, key)

	if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	blob := []byte(`{"items":[],"total":0,"itemCount":0}`)
	if err := store.Set(ctx, key, blob); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob mismatch: %s", got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

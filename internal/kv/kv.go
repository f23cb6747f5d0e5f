// Package kv provides the durable key-value store behind cart
// persistence: one serialized cart blob per identity key.
package kv

import "context"

// Store is the narrow persistence contract the cart store depends on.
// Get returns domain.ErrNotFound when no blob exists for the key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey builds the identity-scoped persistence key. Empty identity
// keys map to the anonymous guest bucket.
func CartKey(identityKey string) string {
	if identityKey == "" {
		identityKey = "guest"
	}
	return "cart_" + identityKey
}

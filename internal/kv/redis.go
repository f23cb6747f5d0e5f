package kv

import (
	"context"
	"errors"

	"shoppico/internal/domain"

	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client *redis.Client
}

// NewRedis returns a Store backed by a Redis instance. Blobs are kept
// without expiry; the cart owns its own lifecycle.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

// DialRedis connects a client and verifies it with a ping.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return blob, nil
}

func (s *redisStore) Set(ctx context.Context, key string, blob []byte) error {
	return s.client.Set(ctx, key, blob, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

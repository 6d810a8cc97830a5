package securestore

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Redis backs the secure store with a redis instance, used when the session
// survives process restarts. Keys are namespaced to avoid colliding with
// other tenants of the same instance.
type Redis struct {
	client *goredis.Client
	prefix string
}

// NewRedis wraps an existing client. prefix may be empty.
func NewRedis(client *goredis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "stablehand:secure"
	}
	return &Redis{client: client, prefix: prefix}
}

func (s *Redis) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("secure store get: %w", err)
	}
	return v, true, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("secure store set: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("secure store delete: %w", err)
	}
	return nil
}

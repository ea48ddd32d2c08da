// Package redis provides a Redis-backed implementation of storage.Store.
package redis

import (
	"context"
	"errors"
	"fmt"

	lowimpl "github.com/redis/go-redis/v9"

	"github.com/mmynk/ratecraft/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Conf holds the connection settings for a Redis server.
type Conf struct {
	Addr string
	PW   string
	DB   int
}

// Store implements storage.Store on top of Redis string keys.
type Store struct {
	conf Conf

	// implementation details, not exported
	internal *lowimpl.Client
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, conf Conf) (*Store, error) {
	client := lowimpl.NewClient(&lowimpl.Options{
		Addr:     conf.Addr,
		Password: conf.PW,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", conf.Addr, err)
	}
	return &Store{conf: conf, internal: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.internal.Get(ctx, key).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil // redis.Nil -> found: false, err: nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	// no expiration: settings live until reset
	if err := s.internal.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.internal.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}

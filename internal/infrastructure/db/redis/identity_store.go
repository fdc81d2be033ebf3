package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityStore keeps serialised identities in Redis, one string key per
// browser session. Keys never expire unless ttl is set.
type IdentityStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityStore creates an IdentityStore wrapping the given Redis client.
// A ttl <= 0 stores keys without expiry.
func NewIdentityStore(client *redis.Client, ttl time.Duration) *IdentityStore {
	if ttl < 0 {
		ttl = 0
	}
	return &IdentityStore{client: client, ttl: ttl}
}

// Load returns the value at key, or (nil, nil) when the key does not exist.
func (s *IdentityStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("identity load: %w", err)
	}
	return b, nil
}

// Save overwrites key with value.
func (s *IdentityStore) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("identity save: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *IdentityStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("identity delete: %w", err)
	}
	return nil
}

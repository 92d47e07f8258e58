package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/PaquitoSoft/small-shop/pkg/redis"
)

// Store is the opaque per-client persistence the cart core writes through.
// A session holds named slots (the active cart, the order archive); absence
// of a slot is an expected state, not an error.
type Store interface {
	Get(ctx context.Context, sessionID, slot string) ([]byte, bool, error)
	Set(ctx context.Context, sessionID, slot string, value []byte) error
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SessionKey(sessionID, slot string) string
}

// RedisStore keeps session slots in Redis under the session key namespace,
// expiring them with the configured session lifetime.
type RedisStore struct {
	kv  keyValue
	ttl time.Duration
}

// NewRedisStore builds the production store.
func NewRedisStore(client *redisclient.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisStore{kv: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, slot string) ([]byte, bool, error) {
	value, err := s.kv.Get(ctx, s.kv.SessionKey(sessionID, slot))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading session slot %q: %w", slot, err)
	}
	return []byte(value), true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, slot string, value []byte) error {
	if err := s.kv.Set(ctx, s.kv.SessionKey(sessionID, slot), value, s.ttl); err != nil {
		return fmt.Errorf("writing session slot %q: %w", slot, err)
	}
	return nil
}

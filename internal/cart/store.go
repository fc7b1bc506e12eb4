package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andradelabs/motopecas-backend/pkg/redis"
)

// Store persists one serialized cart per session.
type Store interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*State, error)
	Save(ctx context.Context, sessionID uuid.UUID, state *State) error
}

type blobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(sessionID string) string
}

// RedisStore keeps each cart as a JSON blob under a fixed per-session key.
type RedisStore struct {
	client blobStore
	ttl    time.Duration
}

// NewRedisStore binds the store to the shared redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load reads the session's cart, returning an empty cart on a miss. A blob
// that no longer unmarshals (schema drift) is treated as a miss rather than
// an error so a stale cart can never brick the storefront.
func (s *RedisStore) Load(ctx context.Context, sessionID uuid.UUID) (*State, error) {
	blob, err := s.client.Get(ctx, s.client.CartKey(sessionID.String()))
	if err != nil {
		if redis.IsNil(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	state := NewState()
	if err := json.Unmarshal([]byte(blob), state); err != nil {
		return NewState(), nil
	}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	return state, nil
}

// Save writes the full serialized cart back under the session key.
func (s *RedisStore) Save(ctx context.Context, sessionID uuid.UUID, state *State) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializing cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID.String()), string(blob), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

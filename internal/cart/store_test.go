package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	data    map[string]string
	setErr  error
	getErr  error
	lastTTL time.Duration
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{data: map[string]string{}}
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeBlobStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value.(string)
	f.lastTTL = ttl
	return nil
}

func (f *fakeBlobStore) CartKey(sessionID string) string {
	return "motopecas:cart:" + sessionID
}

func TestRedisStoreMissReturnsEmptyCart(t *testing.T) {
	store := &RedisStore{client: newFakeBlobStore(), ttl: time.Hour}

	state, err := store.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.False(t, state.FeeQuoted)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	blob := newFakeBlobStore()
	store := &RedisStore{client: blob, ttl: time.Hour}
	sessionID := uuid.New()

	state := sampleState()
	state.SetShippingFee(money("15.00"))
	require.NoError(t, store.Save(context.Background(), sessionID, state))
	assert.Equal(t, time.Hour, blob.lastTTL)

	restored, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, state.Items, restored.Items)
	assert.True(t, restored.TotalPrice().Equal(state.TotalPrice()))
	assert.True(t, restored.FeeQuoted)
}

func TestRedisStoreCorruptBlobTreatedAsMiss(t *testing.T) {
	blob := newFakeBlobStore()
	sessionID := uuid.New()
	blob.data["motopecas:cart:"+sessionID.String()] = "{not json"
	store := &RedisStore{client: blob, ttl: time.Hour}

	state, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

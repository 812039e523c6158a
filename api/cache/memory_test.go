package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Minute)

	_, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "a@example.com", "123456"))
	val, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", val)

	require.NoError(t, store.Set(ctx, "a@example.com", "654321"))
	val, _, _ = store.Get(ctx, "a@example.com")
	assert.Equal(t, "654321", val)

	require.NoError(t, store.Delete(ctx, "a@example.com"))
	_, ok, _ = store.Get(ctx, "a@example.com")
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, 20*time.Millisecond)
	require.NoError(t, store.Set(ctx, "k", "v"))

	time.Sleep(60 * time.Millisecond)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 20*time.Millisecond, store.TTL())
}

func TestMemoryStoreSatisfiesStore(t *testing.T) {
	var _ Store = NewMemoryStore(1, time.Second)
	var _ Store = (*RedisStore)(nil)
}

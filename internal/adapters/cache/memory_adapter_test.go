package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hbnb-web/internal/adapters/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/providers"
)

func TestMemoryAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := cache.NewMemoryAdapter(10, time.Minute)

	require.NoError(t, adapter.Set(ctx, "view:1", []byte("snapshot"), 60))

	got, err := adapter.Get(ctx, "view:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), got)

	exists, err := adapter.Exists(ctx, "view:1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, adapter.Delete(ctx, "view:1"))
	_, err = adapter.Get(ctx, "view:1")
	assert.True(t, providers.IsCacheMiss(err))
}

func TestMemoryAdapter_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	adapter := cache.NewMemoryAdapter(10, time.Minute)
	value := []byte("abc")
	require.NoError(t, adapter.Set(ctx, "k", value, 0))
	value[0] = 'z'

	got, err := adapter.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := adapter.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryAdapter_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	adapter := cache.NewMemoryAdapter(2, time.Minute)

	require.NoError(t, adapter.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, adapter.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, adapter.Set(ctx, "c", []byte("3"), 0))

	_, err := adapter.Get(ctx, "a")
	assert.True(t, providers.IsCacheMiss(err))
}

func TestMemoryAdapter_EntryTTL(t *testing.T) {
	ctx := context.Background()
	adapter := cache.NewMemoryAdapter(10, time.Hour)
	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 1))

	require.Eventually(t, func() bool {
		_, err := adapter.Get(ctx, "k")
		return providers.IsCacheMiss(err)
	}, 3*time.Second, 50*time.Millisecond)
}

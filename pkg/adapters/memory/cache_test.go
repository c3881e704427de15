package memory

import (
	"context"
	"testing"
	"time"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheContract(t *testing.T) {
	ports.RunCacheContract(t, NewCache())
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	require.NoError(t, cache.Set(ctx, "short", &domain.Response{Body: "x"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must miss")

	// Lazy expiry drops the entry on read.
	assert.Equal(t, 0, cache.Len())
}

func TestCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	require.NoError(t, cache.Set(ctx, "k", &domain.Response{Body: "old"}, time.Minute))
	require.NoError(t, cache.Set(ctx, "k", &domain.Response{Body: "new"}, time.Minute))

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Body)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				cache.Set(ctx, "shared", &domain.Response{Body: "v"}, time.Minute)
				cache.Get(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	_, ok, err := cache.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
}

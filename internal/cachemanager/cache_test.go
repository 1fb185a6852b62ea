package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInMemoryCacheManager_GetSet round-trips a value through the cache
func TestInMemoryCacheManager_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	_, found := c.Get(ctx, "missing")
	assert.False(t, found, "empty cache should miss")

	c.Set(ctx, "answer", 42, time.Minute)
	v, found := c.Get(ctx, "answer")
	require.True(t, found)
	assert.Equal(t, 42, v)
}

// TestInMemoryCacheManager_Delete removes only the named keys
func TestInMemoryCacheManager_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "a", "1", time.Minute)
	c.Set(ctx, "b", "2", time.Minute)

	require.NoError(t, c.Delete(ctx, "a"))

	_, found := c.Get(ctx, "a")
	assert.False(t, found)
	_, found = c.Get(ctx, "b")
	assert.True(t, found)
}

// TestInMemoryCacheManager_Flush empties the cache
func TestInMemoryCacheManager_Flush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "a", "1", time.Minute)
	require.NoError(t, c.Flush(ctx))

	_, found := c.Get(ctx, "a")
	assert.False(t, found)
}

// TestReadThroughCache_Get loads once, serves from cache afterwards
func TestReadThroughCache_Get(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "loaded:" + input, nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, loader, false)

	v, err := rt.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "loaded:in", v)
	assert.Equal(t, 1, calls)

	v, err = rt.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "loaded:in", v)
	assert.Equal(t, 1, calls, "second Get should hit the cache")
}

// TestReadThroughCache_SkipCache always calls the loader when skipping
func TestReadThroughCache_SkipCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return input, nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, loader, true)

	_, err := rt.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	_, err = rt.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "skip mode should bypass the cache")
}

// TestReadThroughCache_LoaderError errors propagate and are not cached
func TestReadThroughCache_LoaderError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, loader, false)

	_, err := rt.Get(ctx, "k", "in", time.Minute)
	require.ErrorIs(t, err, boom)

	v, err := rt.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err, "error results should not be cached")
	assert.Equal(t, "ok", v)
}

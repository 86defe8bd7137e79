package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestFetchJSONCaches(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]int{"total": 7}, nil
	}

	key, err := c.BuildKey(ctx, "catalog:suppliers", "page1")
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.Equal(t, 7, got["total"])
	require.Equal(t, 1, calls)

	got = nil
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.Equal(t, 7, got["total"])
	require.Equal(t, 1, calls)
}

func TestBumpInvalidates(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "catalog:products")
	require.NoError(t, err)

	require.NoError(t, c.Bump(ctx))

	after, err := c.BuildKey(ctx, "catalog:products")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestNilCacheDegradesToLoader(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	key, err := c.BuildKey(ctx, "catalog:suppliers")
	require.NoError(t, err)

	var got []string
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, calls)

	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.Equal(t, 2, calls)

	require.NoError(t, c.Bump(ctx))
}

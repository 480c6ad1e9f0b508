package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMemoryCache(t *testing.T) Cache {
	t.Helper()
	config := DefaultConfig()
	config.Provider = "memory"
	c, err := NewCache(config, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetAndGet(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user:1:profile", "alice", time.Minute))

	value, found := c.Get(ctx, "user:1:profile")
	require.True(t, found)
	assert.Equal(t, "alice", value)

	assert.True(t, c.Exists(ctx, "user:1:profile"))
	assert.False(t, c.Exists(ctx, "user:2:profile"))
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "lived", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get(ctx, "short")
	assert.False(t, found)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, found := c.Get(ctx, "key")
	assert.False(t, found)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, UserProfileKey(1), "alice", time.Minute))
	require.NoError(t, c.Set(ctx, UserBadgesKey(1), []string{"creator_1"}, time.Minute))
	require.NoError(t, c.Set(ctx, UserProfileKey(2), "bob", time.Minute))

	require.NoError(t, c.DeletePattern(ctx, UserPattern(1)))

	assert.False(t, c.Exists(ctx, UserProfileKey(1)))
	assert.False(t, c.Exists(ctx, UserBadgesKey(1)))
	assert.True(t, c.Exists(ctx, UserProfileKey(2)))
}

func TestMemoryCacheEvictsAtCapacity(t *testing.T) {
	config := DefaultConfig()
	config.Provider = "memory"
	config.MaxKeys = 3
	c, err := NewCache(config, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key:%d", i), i, time.Minute))
	}

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Keys, int64(3))
}

func TestMemoryCacheClear(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Clear(ctx))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Keys)
}

func TestNewCacheRejectsUnknownProvider(t *testing.T) {
	config := DefaultConfig()
	config.Provider = "memcached"

	_, err := NewCache(config, zap.NewNop())
	assert.Error(t, err)
}

func TestDecodeKeepsConcreteType(t *testing.T) {
	cached := map[string]int64{"creator_1": 3, "rater_10": 1}

	var counts map[string]int64
	require.True(t, Decode(cached, &counts))
	assert.Equal(t, cached, counts)
}

func TestDecodeRestoresGenericJSONShape(t *testing.T) {
	// What the Redis provider hands back after a JSON round-trip:
	// generic maps with float64 numbers.
	cached := map[string]interface{}{"creator_1": float64(3), "rater_10": float64(1)}

	var counts map[string]int64
	require.True(t, Decode(cached, &counts))
	assert.Equal(t, int64(3), counts["creator_1"])
	assert.Equal(t, int64(1), counts["rater_10"])
}

func TestDecodeParsesRawJSONString(t *testing.T) {
	var counts map[string]int64
	require.True(t, Decode(`{"creator_1":3}`, &counts))
	assert.Equal(t, int64(3), counts["creator_1"])
}

func TestDecodeRejectsMismatchedShape(t *testing.T) {
	var counts map[string]int64
	assert.False(t, Decode([]interface{}{"creator_1"}, &counts))
	assert.False(t, Decode(nil, nil))
}

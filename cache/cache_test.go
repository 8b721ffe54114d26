package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeyIsDeterministic(t *testing.T) {
	type query struct {
		Page   int    `json:"page"`
		Status string `json:"status,omitempty"`
	}

	a := Key("orders:stats:", query{Page: 1, Status: "confirmed"})
	b := Key("orders:stats:", query{Page: 1, Status: "confirmed"})
	c := Key("orders:stats:", query{Page: 2, Status: "confirmed"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, `orders:stats:{"page":1,"status":"confirmed"}`, a)
}

func TestNopNeverHits(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}

	c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute)
	var out map[string]int
	assert.False(t, c.Get(ctx, "k", &out))
	c.InvalidatePrefix(ctx, "k")
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, zap.NewNop()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	type stats struct {
		Orders  int     `json:"orders"`
		Revenue float64 `json:"revenue"`
	}
	c.Set(ctx, "orders:stats:a", stats{Orders: 3, Revenue: 12.5}, time.Minute)

	var got stats
	require.True(t, c.Get(ctx, "orders:stats:a", &got))
	assert.Equal(t, stats{Orders: 3, Revenue: 12.5}, got)
	assert.Equal(t, time.Minute, mr.TTL("orders:stats:a"))

	var miss stats
	assert.False(t, c.Get(ctx, "orders:stats:b", &miss))

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.Get(ctx, "orders:stats:a", &got))
}

func TestRedisCacheCorruptEntryMisses(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("products:list:x", "{not json"))

	var out map[string]int
	assert.False(t, c.Get(context.Background(), "products:list:x", &out))
}

func TestRedisCacheInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	for i := 0; i < 150; i++ {
		c.Set(ctx, Key("orders:stats:", i), i, time.Minute)
	}
	c.Set(ctx, "products:list:1", 1, time.Minute)
	c.Set(ctx, "orders:other", 1, time.Minute)

	c.InvalidatePrefix(ctx, "orders:stats:")

	assert.False(t, mr.Exists(Key("orders:stats:", 0)))
	assert.False(t, mr.Exists(Key("orders:stats:", 149)))
	assert.True(t, mr.Exists("products:list:1"))
	assert.True(t, mr.Exists("orders:other"))
	assert.Len(t, mr.Keys(), 2)

	c.InvalidatePrefix(ctx, "nothing:")
	assert.Len(t, mr.Keys(), 2)
}

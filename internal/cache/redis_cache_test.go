package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestRedisCacheRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedisCache(t)

	require.NoError(t, c.SetJSON(ctx, "feedback:abc", payload{Score: 8.5, Text: "good"}, time.Minute))

	var got payload
	hit, err := c.GetJSON(ctx, "feedback:abc", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 8.5, got.Score)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "feedback:abc", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedisCache(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got payload
	hit, err := c.GetJSON(ctx, "bad", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("bad"))
}

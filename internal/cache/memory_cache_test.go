package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

func TestMemoryCacheExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetJSON(ctx, "short", payload{Score: 7, Text: "ok"}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "long", payload{Score: 3}, time.Hour))
	require.NoError(t, c.SetJSON(ctx, "forever", payload{Score: 1}, 0))

	var got payload
	hit, err := c.GetJSON(ctx, "short", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Score: 7, Text: "ok"}, got)

	now = now.Add(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, hit, "expired entry must not be served")
	assert.Equal(t, 3, c.Len(), "expired entry stays until swept")

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 2, c.Len())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, c.Sweep())
	hit, _ = c.GetJSON(ctx, "forever", &got)
	assert.True(t, hit)
}

func TestMemoryCacheDel(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.SetJSON(ctx, "a", payload{}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "b", payload{}, time.Minute))
	require.NoError(t, c.Del(ctx, "a", "missing"))

	var got payload
	hit, _ := c.GetJSON(ctx, "a", &got)
	assert.False(t, hit)
	hit, _ = c.GetJSON(ctx, "b", &got)
	assert.True(t, hit)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestSetAndGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "event:abc", `{"title":"Hack Night"}`, time.Minute))

	val, err := c.Get(ctx, "event:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Hack Night"}`, val)
}

func TestGetMissingKeyIsMiss(t *testing.T) {
	c, _ := setupCache(t)

	_, err := c.Get(context.Background(), "event:nope")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestExpiredKeyIsMiss(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "event:abc", "x", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "event:abc")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestDel(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Del(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestParseURLFailure(t *testing.T) {
	_, err := NewRedisCache("not a url")
	assert.Error(t, err)
}

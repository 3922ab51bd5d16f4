package redisx

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(Config{Addr: mr.Addr(), DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return c, mr
}

func TestSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 60)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 60*time.Second, mr.TTL("k"))
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSetTTLExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 1)
	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	mr.FastForward(time.Second)

	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestSetWithoutTTLPersists(t *testing.T) {
	c, mr := newTestCache(t)

	c.Set(context.Background(), "k", []byte("v"), 0)
	assert.Equal(t, time.Duration(0), mr.TTL("k"))

	mr.FastForward(24 * time.Hour)
	_, ok := c.Get(context.Background(), "k")
	assert.True(t, ok)
}

func TestSetNX(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.True(t, c.SetNX(ctx, "k", []byte("first"), 60))
	assert.False(t, c.SetNX(ctx, "k", []byte("second"), 60))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("first"), got)
}

func TestDelExists(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	assert.True(t, c.Exists(ctx, "a"))
	assert.Equal(t, int64(2), c.Del(ctx, "a", "b", "absent"))
	assert.False(t, c.Exists(ctx, "a"))
	assert.Equal(t, int64(0), c.Del(ctx))
}

func TestExpireKey(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	assert.True(t, c.ExpireKey(ctx, "k", 5))
	assert.Equal(t, 5*time.Second, mr.TTL("k"))

	assert.False(t, c.ExpireKey(ctx, "absent", 5))
}

func TestIncr(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), c.Incr(ctx, "cnt"))
	assert.Equal(t, int64(2), c.Incr(ctx, "cnt"))
	assert.Equal(t, int64(3), c.Incr(ctx, "cnt"))
}

func TestZAppendCappedTrims(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		ok := c.ZAppendCapped(ctx, "z", float64(i), []byte{'a' + byte(i)}, 3, 3600)
		require.True(t, ok)
	}

	assert.Equal(t, int64(3), c.ZCard(ctx, "z"))
	assert.Equal(t, 3600*time.Second, mr.TTL("z"))

	// остались три самых свежих, в порядке убывания score
	page := c.ZRevPage(ctx, "z", 0, -1)
	require.Len(t, page, 3)
	assert.Equal(t, [][]byte{{'f'}, {'e'}, {'d'}}, page)
}

func TestZRevPageBounds(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		c.ZAppendCapped(ctx, "z", float64(i), []byte{'0' + byte(i)}, 100, 0)
	}

	assert.Equal(t, [][]byte{{'4'}, {'3'}}, c.ZRevPage(ctx, "z", 0, 1))
	assert.Equal(t, [][]byte{{'2'}, {'1'}}, c.ZRevPage(ctx, "z", 2, 3))
	assert.Empty(t, c.ZRevPage(ctx, "z", 4, 5))
	assert.Empty(t, c.ZRevPage(ctx, "absent", 0, 9))
}

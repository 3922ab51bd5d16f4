package session

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	redisx "github.com/Liv-glitch/Farm-Mall-sub000/internal/infra/cache/redis"
)

type sessionData struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisx.New(redisx.Config{Addr: mr.Addr(), DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return NewStore(c, log.New(io.Discard, "", 0)), mr
}

func TestSetGetRoundtrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := sessionData{UserID: "u-1", Login: "alice"}
	require.NoError(t, s.Set(ctx, "sid-1", in, 0))

	var out sessionData
	require.True(t, s.Get(ctx, "sid-1", &out))
	assert.Equal(t, in, out)
}

// Без явного TTL сессия живёт сутки.
func TestDefaultTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sid-1", sessionData{}, 0))
	assert.Equal(t, 86400*time.Second, mr.TTL(domain.CacheKeySession("sid-1")))

	mr.FastForward(86400 * time.Second)
	var out sessionData
	assert.False(t, s.Get(ctx, "sid-1", &out))
}

func TestCustomTTL(t *testing.T) {
	s, mr := newTestStore(t)

	require.NoError(t, s.Set(context.Background(), "sid-1", sessionData{}, 300))
	assert.Equal(t, 300*time.Second, mr.TTL(domain.CacheKeySession("sid-1")))
}

func TestGetMiss(t *testing.T) {
	s, _ := newTestStore(t)

	var out sessionData
	assert.False(t, s.Get(context.Background(), "absent", &out))
}

func TestGetCorruptPayload(t *testing.T) {
	s, mr := newTestStore(t)

	require.NoError(t, mr.Set(domain.CacheKeySession("sid-1"), "{{not json"))

	var out sessionData
	assert.False(t, s.Get(context.Background(), "sid-1", &out))
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sid-1", sessionData{Login: "alice"}, 0))
	s.Delete(ctx, "sid-1")

	var out sessionData
	assert.False(t, s.Get(ctx, "sid-1", &out))
}

func TestSetMarshalError(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Set(context.Background(), "sid-1", make(chan int), 0)
	assert.Error(t, err)
}

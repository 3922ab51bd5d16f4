package blacklist

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

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisx.New(redisx.Config{Addr: mr.Addr(), DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return NewStore(c), mr
}

// Отозванный токен остаётся в блэклисте до собственного истечения.
func TestRevokeLifecycle(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	const tok = "token-abc"

	assert.False(t, s.IsRevoked(ctx, tok))

	s.Revoke(ctx, tok, time.Now().Add(time.Hour))
	assert.True(t, s.IsRevoked(ctx, tok))

	// запись живёт не дольше самого токена
	ttl := mr.TTL(domain.CacheKeyBlacklist(tok))
	assert.LessOrEqual(t, ttl, time.Hour)
	assert.Greater(t, ttl, 59*time.Minute)

	mr.FastForward(time.Hour)
	assert.False(t, s.IsRevoked(ctx, tok))
}

// exp в прошлом: токен и так мёртв, но запись держим минуту.
func TestRevokeExpiredToken(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	const tok = "stale-token"

	s.Revoke(ctx, tok, time.Now().Add(-time.Hour))
	assert.True(t, s.IsRevoked(ctx, tok))
	assert.Equal(t, time.Minute, mr.TTL(domain.CacheKeyBlacklist(tok)))

	mr.FastForward(time.Minute)
	assert.False(t, s.IsRevoked(ctx, tok))
}

func TestRevokeIdempotent(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	const tok = "token-abc"

	s.Revoke(ctx, tok, time.Now().Add(time.Hour))
	first := mr.TTL(domain.CacheKeyBlacklist(tok))

	// повторный Revoke не перезаписывает и не сбрасывает TTL
	mr.FastForward(10 * time.Minute)
	s.Revoke(ctx, tok, time.Now().Add(2*time.Hour))
	assert.Equal(t, first-10*time.Minute, mr.TTL(domain.CacheKeyBlacklist(tok)))
	assert.True(t, s.IsRevoked(ctx, tok))
}

// Стор недоступен: проверка деградирует до «не отозван».
func TestIsRevokedFailOpen(t *testing.T) {
	c := redisx.New(redisx.Config{Addr: "127.0.0.1:1", DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	t.Cleanup(c.Close)
	s := NewStore(c)

	assert.False(t, s.IsRevoked(context.Background(), "token-abc"))
}

package blacklist

import (
	"context"
	"time"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

// KV — минимальный интерфейс, который нам нужен от кеша.
type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) bool
	Exists(ctx context.Context, key string) bool
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func key(token string) string { return domain.CacheKeyBlacklist(token) }

// Revoke помечает токен отозванным до времени exp (TTL = exp-now).
// Инвариант: запись в блэклисте живёт не меньше самого токена,
// иначе отозванный токен «оживёт» после исчезновения записи.
func (s *Store) Revoke(ctx context.Context, token string, exp time.Time) {
	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute // подстраховка, если exp в прошлом
	}
	s.kv.SetNX(ctx, key(token), []byte("1"), int(ttl.Seconds()))
}

// IsRevoked fail-open: при недоступном сторе вернёт false.
// Компромисс доступность/строгость зафиксирован в DESIGN.md.
func (s *Store) IsRevoked(ctx context.Context, token string) bool {
	return s.kv.Exists(ctx, key(token))
}

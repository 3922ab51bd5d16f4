package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

// KV — минимальный интерфейс, который нам нужен от кеша.
type KV interface {
	Incr(ctx context.Context, key string) int64
	ExpireKey(ctx context.Context, key string, seconds int) bool
	Get(ctx context.Context, key string) ([]byte, bool)
}

// Limiter — скользящее окно на счётчике ratelimit:{id}.
// Окно открывается первым запросом и закрывается само по TTL.
type Limiter struct {
	kv     KV
	max    int64
	window time.Duration
}

func New(kv KV, max int64, window time.Duration) *Limiter {
	return &Limiter{kv: kv, max: max, window: window}
}

// Increment увеличивает счётчик идентификатора и возвращает новое
// значение. TTL выставляется только когда счётчик стал равен 1 —
// безусловный EXPIRE продлевал бы окно каждым запросом и лимит
// никогда бы не срабатывал. 0 означает недоступный стор (fail-open).
func (l *Limiter) Increment(ctx context.Context, id string, window time.Duration) int64 {
	key := domain.CacheKeyRateLimit(id)
	n := l.kv.Incr(ctx, key)
	if n == 1 {
		l.kv.ExpireKey(ctx, key, ceilSeconds(window))
	}
	return n
}

// Count — текущее значение счётчика, 0 если окно истекло или ключа нет.
func (l *Limiter) Count(ctx context.Context, id string) int64 {
	b, ok := l.kv.Get(ctx, domain.CacheKeyRateLimit(id))
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Allow инкрементирует и сравнивает с настроенным максимумом.
// «Не смогли посчитать» (стор лежит, n==0) трактуем как «пропустить».
func (l *Limiter) Allow(ctx context.Context, id string) (int64, bool) {
	n := l.Increment(ctx, id, l.window)
	return n, n <= l.max
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

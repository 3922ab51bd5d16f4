package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Все операции fail-open: при неготовом соединении чтения возвращают
// пустые значения, записи молча пропускаются. Кеш — оптимизация,
// бизнес-логика обязана оставаться корректной и без него.

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.IsConnected() {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Printf("GET %q: not found", key)
		return nil, false
	}
	if err != nil {
		c.fail("GET "+key, err)
		return nil, false
	}
	c.logger.Printf("GET %q: hit (%d bytes)", key, len(b))
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) {
	if !c.IsConnected() {
		return
	}
	ttl := secondsToTTL(ttlSeconds)
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		c.fail("SET "+key, err)
		return
	}
	c.logger.Printf("SET %q ok (ttl=%s)", key, ttl)
}

// SetNX устанавливает значение только если ключ ещё не существует.
func (c *Cache) SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) bool {
	if !c.IsConnected() {
		return false
	}
	ttl := secondsToTTL(ttlSeconds)
	ok, err := c.rdb.SetNX(ctx, key, val, ttl).Result()
	if err != nil {
		c.fail("SETNX "+key, err)
		return false
	}
	if ok {
		c.logger.Printf("SETNX %q ok (ttl=%s)", key, ttl)
	} else {
		c.logger.Printf("SETNX %q skipped (already exists)", key)
	}
	return ok
}

func (c *Cache) Del(ctx context.Context, keys ...string) int64 {
	if !c.IsConnected() || len(keys) == 0 {
		return 0
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.fail("DEL", err)
		return 0
	}
	c.logger.Printf("DEL %v: deleted=%d", keys, n)
	return n
}

func (c *Cache) Exists(ctx context.Context, key string) bool {
	if !c.IsConnected() {
		return false
	}
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.fail("EXISTS "+key, err)
		return false
	}
	return n == 1
}

func (c *Cache) ExpireKey(ctx context.Context, key string, seconds int) bool {
	if !c.IsConnected() {
		return false
	}
	ok, err := c.rdb.Expire(ctx, key, time.Duration(seconds)*time.Second).Result()
	if err != nil {
		c.fail("EXPIRE "+key, err)
		return false
	}
	return ok
}

// Incr возвращает значение счётчика после инкремента, 0 при недоступном
// сторе (fail-open: «не смогли посчитать» значит «пропускаем»).
func (c *Cache) Incr(ctx context.Context, key string) int64 {
	if !c.IsConnected() {
		return 0
	}
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		c.fail("INCR "+key, err)
		return 0
	}
	c.logger.Printf("INCR %q -> %d", key, n)
	return n
}

// ZAppendCapped добавляет member в сортированную коллекцию и держит её
// в пределах maxLen элементов: ZADD + ZREMRANGEBYRANK + EXPIRE одним
// пайплайном. Сначала вставка, потом срез — новая запись не может быть
// вытеснена собственным добавлением.
func (c *Cache) ZAppendCapped(ctx context.Context, key string, score float64, member []byte, maxLen int64, ttlSeconds int) bool {
	if !c.IsConnected() {
		return false
	}
	pipe := c.rdb.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
	pipe.ZRemRangeByRank(ctx, key, 0, -(maxLen + 1))
	pipe.Expire(ctx, key, secondsToTTL(ttlSeconds))
	if _, err := pipe.Exec(ctx); err != nil {
		c.fail("ZADD "+key, err)
		return false
	}
	c.logger.Printf("ZADD %q score=%.0f (cap=%d ttl=%ds)", key, score, maxLen, ttlSeconds)
	return true
}

// ZRevPage возвращает срез [start, stop] в порядке убывания score
// (самые свежие первыми).
func (c *Cache) ZRevPage(ctx context.Context, key string, start, stop int64) [][]byte {
	if !c.IsConnected() {
		return nil
	}
	vals, err := c.rdb.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		c.fail("ZREVRANGE "+key, err)
		return nil
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out
}

func (c *Cache) ZCard(ctx context.Context, key string) int64 {
	if !c.IsConnected() {
		return 0
	}
	n, err := c.rdb.ZCard(ctx, key).Result()
	if err != nil {
		c.fail("ZCARD "+key, err)
		return 0
	}
	return n
}

func secondsToTTL(ttlSeconds int) time.Duration {
	if ttlSeconds > 0 {
		return time.Duration(ttlSeconds) * time.Second
	}
	return 0
}

package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
// Формат ключей — стабильный контракт: его читают и другие сервисы.
func CacheKeySession(id string) string         { return "session:" + id }
func CacheKeyBlacklist(tok string) string      { return "blacklist:" + tok }
func CacheKeyRateLimit(id string) string       { return "ratelimit:" + id }
func CacheKeyUserHistory(userID string) string { return "history:" + userID }
func CacheKeyPlantID(userID UserID, imageHash string) string {
	return "plant_id:" + userID.String() + ":" + imageHash
}

// Единая глобальная лента «недавних распознаваний»
const KeyRecentSearches = "recent_searches"

// Простой k/v интерфейс поверх Redis. Все операции fail-open:
// при недоступном сторе чтения возвращают пустые значения,
// записи молча пропускаются — кеш не источник истины.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int)
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) bool
	Del(ctx context.Context, keys ...string) int64
	Exists(ctx context.Context, key string) bool
	ExpireKey(ctx context.Context, key string, seconds int) bool
	IsConnected() bool
	Ping(context.Context) error
	Close()
}

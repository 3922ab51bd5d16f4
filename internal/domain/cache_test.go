package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Формат ключей — контракт с другими сервисами, любое изменение ломает
// чужие данные.
func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "session:abc", CacheKeySession("abc"))
	assert.Equal(t, "blacklist:tok-1", CacheKeyBlacklist("tok-1"))
	assert.Equal(t, "ratelimit:user-1", CacheKeyRateLimit("user-1"))
	assert.Equal(t, "history:user-1", CacheKeyUserHistory("user-1"))
	assert.Equal(t, "recent_searches", KeyRecentSearches)

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t,
		"plant_id:6ba7b810-9dad-11d1-80b4-00c04fd430c8:deadbeef",
		CacheKeyPlantID(id, "deadbeef"))
}

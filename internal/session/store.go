package session

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

// KV — минимальный интерфейс, который нам нужен от кеша.
type KV interface {
	Set(ctx context.Context, key string, val []byte, ttlSeconds int)
	Get(ctx context.Context, key string) ([]byte, bool)
	Del(ctx context.Context, keys ...string) int64
}

// Сессия живёт сутки, если вызывающий не попросил другой TTL.
const DefaultTTLSeconds = 86400

type Store struct {
	kv  KV
	log *log.Logger
}

func NewStore(kv KV, logger *log.Logger) *Store {
	return &Store{kv: kv, log: logger}
}

func key(id string) string { return domain.CacheKeySession(id) }

// Set сериализует данные сессии в JSON и кладёт под session:{id}.
// Сессии всегда заменяются целиком, частичных обновлений нет.
func (s *Store) Set(ctx context.Context, id string, data any, ttlSeconds int) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultTTLSeconds
	}
	s.kv.Set(ctx, key(id), b, ttlSeconds)
	return nil
}

// Get возвращает false, если сессии нет, она истекла
// или значение не десериализуется.
func (s *Store) Get(ctx context.Context, id string, dest any) bool {
	b, ok := s.kv.Get(ctx, key(id))
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		s.log.Printf("session %q: corrupt payload: %v", id, err)
		return false
	}
	return true
}

// Delete — явное завершение сессии (logout).
func (s *Store) Delete(ctx context.Context, id string) {
	s.kv.Del(ctx, key(id))
}

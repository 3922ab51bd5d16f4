package history

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

// KV — операции сортированных коллекций, которые нам нужны от кеша.
type KV interface {
	ZAppendCapped(ctx context.Context, key string, score float64, member []byte, maxLen int64, ttlSeconds int) bool
	ZRevPage(ctx context.Context, key string, start, stop int64) [][]byte
	ZCard(ctx context.Context, key string) int64
}

// Пределы роста: история пользователя и общая лента.
const (
	UserCap        = 100
	UserTTLSeconds = 30 * 24 * 3600 // 30 дней, обновляется каждой вставкой

	RecentCap        = 1000
	RecentTTLSeconds = 24 * 3600
)

// Запись ленты. Score в коллекции — Timestamp (epoch-millis).
type Entry struct {
	Type          string `json:"type"`
	RefID         string `json:"refId"`
	Timestamp     int64  `json:"timestamp"`
	ResultSummary string `json:"resultSummary"`
}

type Log struct {
	kv  KV
	log *log.Logger
	now func() time.Time
}

func NewLog(kv KV, logger *log.Logger) *Log {
	return &Log{kv: kv, log: logger, now: time.Now}
}

// AppendUser добавляет запись в history:{userId}: вставка, срез до
// последних UserCap элементов, обновление TTL коллекции. Срез после
// вставки — свежая запись не может быть вытеснена сама собой.
func (l *Log) AppendUser(ctx context.Context, userID string, e Entry) {
	l.append(ctx, domain.CacheKeyUserHistory(userID), e, UserCap, UserTTLSeconds)
}

// AppendRecent — то же самое для общей ленты recent_searches.
func (l *Log) AppendRecent(ctx context.Context, e Entry) {
	l.append(ctx, domain.KeyRecentSearches, e, RecentCap, RecentTTLSeconds)
}

func (l *Log) append(ctx context.Context, key string, e Entry, maxLen int64, ttlSeconds int) {
	if e.Timestamp == 0 {
		e.Timestamp = l.now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		l.log.Printf("append %q: marshal: %v", key, err)
		return
	}
	l.kv.ZAppendCapped(ctx, key, float64(e.Timestamp), b, maxLen, ttlSeconds)
}

// UserPage возвращает страницу истории пользователя, самые свежие
// записи первыми. page нумеруется с 1.
func (l *Log) UserPage(ctx context.Context, userID string, page, limit int) []Entry {
	return l.page(ctx, domain.CacheKeyUserHistory(userID), page, limit)
}

func (l *Log) RecentPage(ctx context.Context, page, limit int) []Entry {
	return l.page(ctx, domain.KeyRecentSearches, page, limit)
}

func (l *Log) page(ctx context.Context, key string, page, limit int) []Entry {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := int64(page-1) * int64(limit)
	stop := start + int64(limit) - 1

	raw := l.kv.ZRevPage(ctx, key, start, stop)
	out := make([]Entry, 0, len(raw))
	for _, b := range raw {
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			l.log.Printf("page %q: corrupt member: %v", key, err)
			continue
		}
		out = append(out, e)
	}
	return out
}

// UserSize — текущий размер истории; отдельный запрос,
// страницы размер не возвращают.
func (l *Log) UserSize(ctx context.Context, userID string) int64 {
	return l.kv.ZCard(ctx, domain.CacheKeyUserHistory(userID))
}

func (l *Log) RecentSize(ctx context.Context) int64 {
	return l.kv.ZCard(ctx, domain.KeyRecentSearches)
}

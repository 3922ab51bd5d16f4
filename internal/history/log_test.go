package history

import (
	"context"
	"fmt"
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

func newTestLog(t *testing.T) (*Log, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisx.New(redisx.Config{Addr: mr.Addr(), DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return NewLog(c, log.New(io.Discard, "", 0)), mr
}

func entry(i int) Entry {
	return Entry{
		Type:          "plant_identification",
		RefID:         fmt.Sprintf("ref-%03d", i),
		Timestamp:     int64(i),
		ResultSummary: fmt.Sprintf("result %d", i),
	}
}

// 105 вставок: остаются последние 100, страницы по 10, 11-я пустая.
func TestUserHistoryCapAndPagination(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()
	const user = "user-1"

	for i := 1; i <= 105; i++ {
		l.AppendUser(ctx, user, entry(i))
	}

	assert.Equal(t, int64(100), l.UserSize(ctx, user))

	seen := map[string]bool{}
	wantTS := int64(105) // свежие первыми, убывание без пропусков
	for page := 1; page <= 10; page++ {
		entries := l.UserPage(ctx, user, page, 10)
		require.Len(t, entries, 10, "page %d", page)
		for _, e := range entries {
			assert.Equal(t, wantTS, e.Timestamp)
			assert.False(t, seen[e.RefID], "duplicate %s", e.RefID)
			seen[e.RefID] = true
			wantTS--
		}
	}
	// пять самых старых вытеснены
	assert.Equal(t, int64(5), wantTS)

	assert.Empty(t, l.UserPage(ctx, user, 11, 10))
}

func TestUserHistoryPartialLastPage(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		l.AppendUser(ctx, "user-1", entry(i))
	}

	assert.Len(t, l.UserPage(ctx, "user-1", 1, 10), 10)
	assert.Len(t, l.UserPage(ctx, "user-1", 2, 10), 10)
	assert.Len(t, l.UserPage(ctx, "user-1", 3, 10), 5)
	assert.Empty(t, l.UserPage(ctx, "user-1", 4, 10))
}

func TestUserHistoryTTL(t *testing.T) {
	l, mr := newTestLog(t)
	ctx := context.Background()

	l.AppendUser(ctx, "user-1", entry(1))
	assert.Equal(t, 30*24*time.Hour, mr.TTL(domain.CacheKeyUserHistory("user-1")))

	// каждая вставка обновляет TTL коллекции
	mr.FastForward(10 * 24 * time.Hour)
	l.AppendUser(ctx, "user-1", entry(2))
	assert.Equal(t, 30*24*time.Hour, mr.TTL(domain.CacheKeyUserHistory("user-1")))
}

func TestRecentFeed(t *testing.T) {
	l, mr := newTestLog(t)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		l.AppendRecent(ctx, entry(i))
	}

	assert.Equal(t, int64(15), l.RecentSize(ctx))
	assert.Equal(t, 24*time.Hour, mr.TTL(domain.KeyRecentSearches))

	page := l.RecentPage(ctx, 1, 10)
	require.Len(t, page, 10)
	assert.Equal(t, int64(15), page[0].Timestamp)
	assert.Equal(t, int64(6), page[9].Timestamp)

	mr.FastForward(24 * time.Hour)
	assert.Equal(t, int64(0), l.RecentSize(ctx))
	assert.Empty(t, l.RecentPage(ctx, 1, 10))
}

func TestAppendFillsTimestamp(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.AppendUser(ctx, "user-1", Entry{Type: "plant_identification", RefID: "ref-1"})

	page := l.UserPage(ctx, "user-1", 1, 10)
	require.Len(t, page, 1)
	assert.Equal(t, fixed.UnixMilli(), page[0].Timestamp)
}

func TestPageSkipsCorruptMembers(t *testing.T) {
	l, mr := newTestLog(t)
	ctx := context.Background()

	l.AppendUser(ctx, "user-1", entry(1))
	_, err := mr.ZAdd(domain.CacheKeyUserHistory("user-1"), 99, "not-json")
	require.NoError(t, err)

	page := l.UserPage(ctx, "user-1", 1, 10)
	require.Len(t, page, 1)
	assert.Equal(t, "ref-001", page[0].RefID)
}

func TestPageDefaults(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		l.AppendUser(ctx, "user-1", entry(i))
	}

	// page<1 и limit<1 приводятся к 1 и 10
	page := l.UserPage(ctx, "user-1", 0, 0)
	require.Len(t, page, 10)
	assert.Equal(t, int64(12), page[0].Timestamp)
}

package mw

import (
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/ratelimit"
)

// RateLimit — middleware поверх скользящего окна. Идентификатор —
// пользователь из контекста, иначе клиентский IP. При недоступном
// Redis лимитер возвращает 0 и запрос проходит (fail-open).
func RateLimit(l *ratelimit.Limiter, max int64, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := clientID(r)
			n, allowed := l.Allow(r.Context(), id)
			if n > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(max, 10))
				if rem := max - n; rem > 0 {
					w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(rem, 10))
				} else {
					w.Header().Set("X-RateLimit-Remaining", "0")
				}
			}
			if !allowed {
				reqID := RequestIDFromCtx(r.Context())
				logger.Printf("lvl=warn req_id=%s op=mw.ratelimit msg=%q id=%s count=%d", reqID, "limit exceeded", id, n)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":1029,"text":"too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientID(r *http.Request) string {
	if u, ok := UserFromCtx(r.Context()); ok {
		return u.ID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

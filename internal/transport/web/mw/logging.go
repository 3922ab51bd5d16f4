package mw

import (
	"log"
	"net/http"
	"time"
)

// Logging — access-лог: метод, путь, статус, размер ответа, длительность.
// Формат строки совпадает с logx, чтобы логи фильтровались одинаково.
func Logging(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromCtx(r.Context())
			start := time.Now()

			mw := &metaWriter{ResponseWriter: w}
			next.ServeHTTP(mw, r)

			l.Printf("lvl=info req_id=%s op=http.access method=%s path=%q status=%d size=%d duration_ms=%d",
				reqID, r.Method, r.URL.Path, mw.status, mw.size, time.Since(start).Milliseconds())
		})
	}
}

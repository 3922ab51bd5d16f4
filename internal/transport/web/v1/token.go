package v1

import (
	"net/http"
	"strings"
)

// TokenFromRequest достаёт сырой токен из запроса:
// query-параметр "token", затем Authorization: Bearer.
// Путь /api/auth/{token} разбирает сам хендлер logout.
func TokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

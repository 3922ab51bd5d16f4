package domain

import "context"

// Аутентифицированный пользователь живёт в контексте запроса:
// кладёт его auth-middleware, читают хендлеры и лимитер.
type ctxKey int

const userCtxKey ctxKey = iota

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey).(User)
	return u, ok
}

package domain

import (
	"context"
	"time"
)

type Token string

type TokenClaims struct {
	JTI       string // уникальный id токена
	UserID    UserID
	Login     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Управление токенами (JWT, реализация в internal/auth/token)
type TokenManager interface {
	Issue(ctx context.Context, userID UserID, login string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Ревокация токенов (Redis, blacklist:{token}).
// IsRevoked fail-open: при недоступном сторе вернёт false —
// осознанный компромисс доступность/строгость, см. DESIGN.md.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, exp time.Time)
	IsRevoked(ctx context.Context, token string) bool
}

// Серверные сессии (session:{id}, TTL сутки по умолчанию)
type Sessions interface {
	Set(ctx context.Context, id string, data any, ttlSeconds int) error
	Get(ctx context.Context, id string, dest any) bool
	Delete(ctx context.Context, id string)
}

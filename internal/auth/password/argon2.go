package password

import (
	"errors"

	"github.com/alexedwards/argon2id"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

type Hasher struct {
	params *argon2id.Params
}

// Ensure: Hasher implements domain.PasswordHasher
var _ domain.PasswordHasher = (*Hasher)(nil)

// NewDefault — параметры argon2id по умолчанию: 64MB памяти,
// приемлемая задержка на регистрации/логине.
func NewDefault() *Hasher {
	return &Hasher{params: argon2id.DefaultParams}
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

// Hash возвращает закодированную строку $argon2id$v=19$m=...,
// соль и параметры уже внутри — в БД хранится одна колонка.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify сравнивает пароль с сохранённым хэшем
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}

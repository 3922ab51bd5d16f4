package web

import (
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/history"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/ratelimit"
)

type Repos struct {
	Users domain.UsersRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
	Sessions  domain.Sessions
}

type PlantDeps struct {
	Storage  domain.ImageStorage
	Analyzer domain.PlantAnalyzer
	History  *history.Log
	Limiter  *ratelimit.Limiter
}

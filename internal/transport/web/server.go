package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/config"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/mw"
	authv1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/auth"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/health"
	plantsv1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/plants"
)

// TTL кеша результата распознавания — сутки
const plantResultTTLSeconds = 24 * 3600

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, rep Repos, auth AuthDeps, plants PlantDeps, cache domain.Cache) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	plantsLog := log.New(logger.Writer(), logger.Prefix()+"[plants] ", logger.Flags())

	healthHandler := &health.Handler{DB: rep.Users, Cache: cache, Storage: plants.Storage, Log: healthLog}
	registerHandler := &authv1.HandlerRegister{Log: authLog, Users: rep.Users, Hasher: auth.Hasher}
	loginHandler := &authv1.HandlerLogin{Log: authLog, Users: rep.Users, Hasher: auth.Hasher, Tokens: auth.Tokens, Sessions: auth.Sessions}
	logoutHandler := &authv1.HandlerLogout{Log: authLog, Tokens: auth.Tokens, Blacklist: auth.Blacklist, Sessions: auth.Sessions}
	plantsHandler := &plantsv1.Handler{
		Log:       plantsLog,
		Storage:   plants.Storage,
		Analyzer:  plants.Analyzer,
		Cache:     cache,
		History:   plants.History,
		ResultTTL: plantResultTTLSeconds,
	}

	authMW := mw.AuthDeps{Tokens: auth.Tokens, Blacklist: auth.Blacklist}
	rl := mw.RateLimit(plants.Limiter, cfg.RateLimitMax, logger)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, registerHandler, loginHandler, logoutHandler, plantsHandler, authMW, rl, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}

package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/auth/blacklist"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/auth/password"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/auth/token"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/config"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/history"
	redisx "github.com/Liv-glitch/Farm-Mall-sub000/internal/infra/cache/redis"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/infra/database/postgres"
	s3storage "github.com/Liv-glitch/Farm-Mall-sub000/internal/infra/storage/s3"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/plants"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/ratelimit"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/session"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	storage domain.ImageStorage
	cache   domain.Cache
	repo    domain.UsersRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	plantsLog := log.New(base.Writer(), base.Prefix()+"[plants] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:          cfg.RedisAddr,
		DB:            cfg.RedisDB,
		Password:      cfg.RedisPassword,
		DialTimeout:   cfg.RedisDialTimeout,
		OpTimeout:     cfg.RedisOpTimeout,
		MaxReconnects: cfg.RedisMaxReconnects,
	}, redisLog)
	// На старте без Redis не работаем: сессии и лимиты бессмысленны
	if err := rc.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(rc)
	sessions := session.NewStore(rc, redisLog)

	// Координация поверх Redis
	limiter := ratelimit.New(rc, cfg.RateLimitMax, cfg.RateLimitWindow)
	histLog := history.NewLog(rc, redisLog)

	// Внешний анализатор фото
	analyzer := plants.NewClient(plants.Config{URL: cfg.PlantAPIURL, APIKey: cfg.PlantAPIKey}, plantsLog)

	base.Println("init Server")
	rep := web.Repos{Users: pgRepo}
	auth := web.AuthDeps{Hasher: hasher, Tokens: tm, Blacklist: bl, Sessions: sessions}
	pd := web.PlantDeps{Storage: s3, Analyzer: analyzer, History: histLog, Limiter: limiter}
	server := web.New(serverLog, cfg, rep, auth, pd, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		storage: s3,
		repo:    pgRepo,
		cache:   rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/app"
)

// @title       Farm-Mall API
// @version     1.0
// @description Plant identification service with Redis-backed sessions, rate limiting and history
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

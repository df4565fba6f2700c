package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/cache"
	"github.com/nameswipe/nameswipe/internal/config"
	"github.com/nameswipe/nameswipe/internal/db"
	"github.com/nameswipe/nameswipe/internal/logger"
	"github.com/nameswipe/nameswipe/internal/realtime"
	"github.com/nameswipe/nameswipe/internal/server"
	"github.com/nameswipe/nameswipe/internal/service/names"
	"github.com/nameswipe/nameswipe/internal/service/sessions"
	"github.com/nameswipe/nameswipe/internal/service/swipes"
	"github.com/nameswipe/nameswipe/internal/service/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	if seeded, err := db.SeedBabyNames(database); err != nil {
		log.Error("failed to seed name catalog", "err", err)
		os.Exit(1)
	} else if seeded > 0 {
		log.Info("seeded name catalog", "count", seeded)
	}

	appCtx := app.New(database, redisCache, log)

	// one hub per server instance, torn down on shutdown
	hub := realtime.NewHub(log)
	notifier := realtime.ForMode(cfg.Realtime.Mode, hub)

	userSvc := users.NewService(appCtx)
	sessionSvc := sessions.NewService(appCtx, hub, cfg.Session.TTL)
	nameSvc := names.NewService(appCtx)
	swipeSvc := swipes.NewService(appCtx, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionSvc.StartSweeper(ctx, cfg.Session.SweepInterval)

	api := server.NewAPI(appCtx, userSvc, sessionSvc, nameSvc, swipeSvc, hub, cfg.Realtime.Mode)
	srv := server.NewHTTPServer(cfg, api)

	go func() {
		log.Info("starting http server", "addr", srv.Addr, "realtime_mode", cfg.Realtime.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown incomplete", "err", err)
	}
}

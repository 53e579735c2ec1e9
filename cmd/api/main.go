package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fusandy452/aistudent-backend/internal/api"
	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/service"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/config"
	mongodb "github.com/fusandy452/aistudent-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/fusandy452/aistudent-backend/internal/infrastructure/db/redis"
	"github.com/fusandy452/aistudent-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Indexes ---
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"users":    mongodb.NewUserRepository(db).EnsureIndexes,
		"profiles": mongodb.NewProfileRepository(db).EnsureIndexes,
		"chat":     mongodb.NewChatRepository(db).EnsureIndexes,
		"admins":   mongodb.NewAdminRepository(db).EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Super admin bootstrap ---
	adminService := service.NewOperatorService(
		mongodb.NewAdminRepository(db),
		redisdb.NewAdminSessionStore(rdb),
		log,
	)
	if err := adminService.EnsureSuperAdmin(ctx, cfg.AdminBootstrapUser, cfg.AdminBootstrapPassword); err != nil {
		log.Fatal().Err(err).Msg("super admin bootstrap failed")
	}

	// --- HTTP server ---
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer limiter.Stop()

	e := api.NewRouter(db, rdb, cfg, limiter)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// Command api runs the task management HTTP service.
//
// @title        Task Management API
// @version      1.0
// @description  Role-based task assignment and tracking service.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskforge/task-management/internal/api"
	"github.com/taskforge/task-management/internal/infrastructure/cache"
	"github.com/taskforge/task-management/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-management/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/task-management/internal/infrastructure/db/redis"
	"github.com/taskforge/task-management/internal/infrastructure/mail"
	"github.com/taskforge/task-management/internal/infrastructure/queue"
	"github.com/taskforge/task-management/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "task-management",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewTaskRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("task index creation failed")
	}
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Email transport ---
	mailer, err := mail.New(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mail client setup failed")
	}

	// --- Notification fan-out ---
	broadcaster := redisdb.NewBroadcaster(rdb, cfg.Redis.BroadcastTopic)
	fanout := queue.NewFanout(log, broadcaster, mail.NewSink(mailer))
	fanout.Start(ctx)

	// --- Cache ---
	userCache := cache.New(cache.NewRedisStore(rdb), cfg.Redis.CacheTTL, log)

	e := api.NewRouter(api.Dependencies{
		Mongo:     db,
		Redis:     rdb,
		Config:    cfg,
		Logger:    log,
		Publisher: fanout,
		Cache:     userCache,
		Mailer:    mailer,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

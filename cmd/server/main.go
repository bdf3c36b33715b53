package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"triviarena/internal/config"
	"triviarena/internal/repository"
	"triviarena/internal/service"
	"triviarena/internal/storage"
	"triviarena/internal/transport/rest"
	"triviarena/internal/transport/ws"
	"triviarena/internal/worker"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	// Session storage: Redis when configured and reachable, in-memory
	// otherwise. The factory owns failover from here on.
	store := storage.NewFactory(ctx, cfg.RedisURL, logger)

	// Question content store. A missing or unreachable Mongo is not fatal:
	// the question service degrades to the embedded starter set.
	var questionRepo repository.QuestionRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = mongoClient.Ping(pingCtx, nil)
			cancel()
		}
		if err != nil {
			logger.Warn("mongodb unavailable, serving embedded content", "err", err)
		} else {
			logger.Info("connected to mongodb")
			questionRepo = repository.NewQuestionRepo(mongoClient.Database("triviarena"))
			defer mongoClient.Disconnect(ctx)
		}
	} else {
		logger.Info("MONGO_URI not set, serving embedded content")
	}

	questionSvc, err := service.NewQuestionService(questionRepo, logger)
	if err != nil {
		logger.Error("failed to initialize question service", "err", err)
		os.Exit(1)
	}
	authSvc := service.NewAuthService(cfg.JWTSecret)
	sessionSvc := service.NewSessionService(questionSvc, store, logger, cfg.SessionTTL, cfg.QuestionCount)

	wsHub := ws.NewHub()
	sessionSvc.SetBroadcaster(wsHub)

	// Periodic idle-session reclaim; only does real work on the in-memory
	// backend.
	sched, err := worker.StartCleanupScheduler(store, cfg.CleanupInterval, logger)
	if err != nil {
		logger.Error("failed to start cleanup scheduler", "err", err)
		os.Exit(1)
	}
	defer func() { _ = sched.Shutdown() }()

	router := rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		Store:          store,
		WSHub:          wsHub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort,
			"degraded", store.IsDegradedMode(), "redisHealthy", store.IsRedisHealthy())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen and serve", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	logger.Info("server exited")
}

package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"appforge-pipeline/config"
	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/engine"
	"appforge-pipeline/internal/handlers"
	"appforge-pipeline/internal/pkg/logger"
	"appforge-pipeline/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	appLogger.Info("starting appforge pipeline",
		"environment", cfg.Environment,
		"port", cfg.HTTP.Port,
	)

	redisService, err := services.NewRedisService(cfg.Redis, appLogger)
	if err != nil {
		appLogger.WithError(err).Error("failed to connect to redis")
		log.Fatal(err)
	}

	responseCatalog, err := catalog.Load(cfg.Engine.CatalogPath)
	if err != nil {
		appLogger.WithError(err).Error("failed to load response catalog")
		log.Fatal(err)
	}

	// A zero seed means non-deterministic replies; anything else pins the
	// phrasing for reproducible runs.
	var rng *rand.Rand
	if cfg.Engine.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.Engine.RandomSeed))
		appLogger.Info("engine running with fixed random seed", "seed", cfg.Engine.RandomSeed)
	}

	conversationEngine := engine.New(responseCatalog, rng, appLogger)
	conversationService := services.NewConversationService(redisService, conversationEngine, cfg.Engine, appLogger)
	handler := handlers.NewConversationHandler(conversationService, appLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Error("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Warn("http server shutdown error")
	}
	if err := conversationService.Close(shutdownCtx); err != nil {
		appLogger.WithError(err).Warn("conversation service shutdown error")
	}
	if err := redisService.Close(); err != nil {
		appLogger.WithError(err).Warn("redis close error")
	}
	appLogger.Info("shutdown complete")
}

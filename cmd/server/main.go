package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stewz00/doc-analysis-api/internal/config"
	"github.com/Stewz00/doc-analysis-api/internal/credentials"
	"github.com/Stewz00/doc-analysis-api/internal/database"
	"github.com/Stewz00/doc-analysis-api/internal/handler"
	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/middleware"
	"github.com/Stewz00/doc-analysis-api/internal/repository"
	"github.com/Stewz00/doc-analysis-api/internal/service"
	"github.com/Stewz00/doc-analysis-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	fatal := func(msg string, err error) {
		logger.Error(ctx, msg, "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, cfg.DbURL); err != nil {
		fatal("failed to migrate database", err)
	}

	db, err := database.New(ctx, cfg.DbURL)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	defer db.Close()

	checkers := []handler.Checker{db}
	if cfg.Storage.Enabled() {
		objects, err := storage.NewObjectStore(ctx, cfg.Storage)
		if err != nil {
			fatal("failed to configure object storage", err)
		}
		checkers = append(checkers, objects)
		logger.Info(ctx, "object storage configured", "bucket", cfg.Storage.Bucket)
	}

	// Initialize repositories, services, and handlers
	userRepo := repository.NewUserRepository(db)
	credStore, err := credentials.NewStore(userRepo, cfg.BcryptCost)
	if err != nil {
		fatal("failed to initialize credential store", err)
	}
	authService := service.NewAuthService(credStore, cfg.JwtSecret,
		service.WithIssuer(cfg.JwtIssuer),
		service.WithTokenExpiry(cfg.TokenTTL),
		service.WithLogger(logger),
	)

	resources := make([]*handler.ResourceHandler, 0, len(handler.Resources))
	for _, res := range handler.Resources {
		resources = append(resources, handler.NewResourceHandler(res, logger))
	}

	routerCfg := handler.RouterConfig{
		Auth:        handler.NewAuthHandler(authService, logger),
		Resources:   resources,
		Health:      handler.NewHealthHandler(logger, checkers...),
		Logger:      logger,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.ResourcesRequireAuth {
		routerCfg.ResourceAuth = middleware.RequireAuth(authService)
	}

	// Create server with timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info(ctx, "server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed to start", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", "error", err)
		return
	}

	logger.Info(ctx, "server exited properly")
}

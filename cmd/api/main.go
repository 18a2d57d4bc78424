package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/recipemagic/backend/config"
	"github.com/recipemagic/backend/internal/api"
	"github.com/recipemagic/backend/internal/database"
	"github.com/recipemagic/backend/internal/logger"
	"github.com/recipemagic/backend/internal/middleware"
	"github.com/recipemagic/backend/internal/router"
	"github.com/recipemagic/backend/internal/server"
	"github.com/recipemagic/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logg.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logg.Fatal("failed to connect to Redis", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(db, service.NewRedisTokenStore(redisClient), cfg.JWTSecret, cfg.MagicLinkTTL, cfg.SessionTTL)
	emailService := service.NewEmailService(cfg, logg)
	lookupService := service.NewSpoonacularService(cfg.SpoonacularAPIKey, cfg.SpoonacularAPIURL)
	recipeService := service.NewRecipeService(db)

	// Handlers and router
	authHandler := api.NewAuthHandler(authService, emailService, logg)
	recipeHandler := api.NewRecipeHandler(lookupService, recipeService, logg)
	generateLimiter := middleware.NewRecipeGenerationRateLimiter(redisClient)

	r := router.SetupRouter(authHandler, recipeHandler, authService, generateLimiter, cfg.FrontendURL)
	srv := server.New(cfg, r)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		logg.Info("starting server", zap.String("addr", cfg.ServerHost+":"+cfg.ServerPort))
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logg.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logg.Info("received signal", zap.Stringer("signal", sig))
	}

	logg.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Fatal("server shutdown error", zap.Error(err))
	}
	logg.Info("server stopped")
}

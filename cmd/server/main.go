// @title           Prophezeiung API
// @version         1.0.0
// @description     Prediction rounds, community ratings and the badge evaluation engine.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prophezeiung/internal/badges"
	"prophezeiung/internal/config"
	"prophezeiung/internal/database"
	"prophezeiung/internal/middleware"
	"prophezeiung/internal/response"
	"prophezeiung/internal/router"
	"prophezeiung/internal/services"

	"go.uber.org/zap"
)

func main() {
	logger, err := initLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("Starting Prophezeiung application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	dbManager, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbManager.Close()

	if cfg.Database.RunMigrations {
		if err := dbManager.Migrate(cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 10*time.Second)
	health := dbManager.Health(healthCtx)
	healthCancel()
	if health.Status != database.StatusHealthy {
		logger.Fatal("Database is not healthy",
			zap.String("status", health.Status),
			zap.Strings("errors", health.Errors),
		)
	}
	logger.Info("Database health check passed", zap.String("status", health.Status))

	// The catalog is immutable for the lifetime of the process. A
	// broken catalog must stop startup, never a running server.
	catalog, err := badges.LoadCatalog(cfg.Badges.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load badge catalog",
			zap.String("path", cfg.Badges.CatalogPath),
			zap.Error(err),
		)
	}
	logger.Info("Badge catalog loaded",
		zap.String("path", cfg.Badges.CatalogPath),
		zap.Int("badges", catalog.Len()),
	)

	serviceCollection, err := services.NewServiceCollection(dbManager, catalog, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = serviceCollection.Start(startCtx)
	startCancel()
	if err != nil {
		logger.Fatal("Failed to start services", zap.Error(err))
	}

	responseConfig := response.DefaultConfig()
	responseConfig.MaskInternalErrors = cfg.Server.Environment == "production"
	responseBuilder := response.NewBuilder(responseConfig, logger)

	authenticator := middleware.NewAuthenticator(cfg.Auth, logger)

	handler := router.New(serviceCollection, authenticator, responseBuilder, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", server.Addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down application...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := serviceCollection.Shutdown(shutdownCtx); err != nil {
		logger.Error("Service shutdown reported errors", zap.Error(err))
	}

	logger.Info("Application shutdown completed")
}

// initLogger initializes the structured logger based on environment
func initLogger() (*zap.Logger, error) {
	env := os.Getenv("GO_ENV")
	var config zap.Config

	switch env {
	case "production":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "staging":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

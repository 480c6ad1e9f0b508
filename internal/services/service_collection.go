// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"
	"time"

	"prophezeiung/internal/badges"
	"prophezeiung/internal/cache"
	"prophezeiung/internal/config"
	"prophezeiung/internal/database"
	"prophezeiung/internal/events"
	"prophezeiung/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection holds all services with dependency injection
type ServiceCollection struct {
	// Domain Services
	UserService         UserService         `json:"-"`
	RoundService        RoundService        `json:"-"`
	ProphecyService     ProphecyService     `json:"-"`
	RatingService       RatingService       `json:"-"`
	BadgeService        BadgeService        `json:"-"`
	NotificationService NotificationService `json:"-"`

	// Repository Collection
	Repositories *repositories.Collection `json:"-"`

	// Infrastructure Components
	Catalog   *badges.Catalog   `json:"-"`
	Cache     cache.Cache       `json:"-"`
	EventBus  events.EventBus   `json:"-"`
	Logger    *zap.Logger       `json:"-"`
	Config    *config.Config    `json:"-"`
	DBManager *database.Manager `json:"-"`
}

// NewServiceCollection creates a new service collection
func NewServiceCollection(
	dbManager *database.Manager,
	catalog *badges.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if dbManager == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("badge catalog is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	sc := &ServiceCollection{
		DBManager: dbManager,
		Catalog:   catalog,
		Config:    cfg,
		Logger:    logger,
	}

	if err := sc.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}
	if err := sc.initializeRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	if err := sc.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("Service collection initialized",
		zap.Int("catalog_badges", catalog.Len()),
	)

	return sc, nil
}

// ===============================
// INITIALIZATION
// ===============================

func (sc *ServiceCollection) initializeInfrastructure() error {
	cacheConfig := cache.DefaultConfig()
	cacheConfig.TTL = sc.Config.Cache.DefaultTTL
	if sc.Config.Cache.RedisURL != "" {
		cacheConfig.Provider = "redis"
		cacheConfig.RedisURL = sc.Config.Cache.RedisURL
	}

	c, err := cache.NewCache(cacheConfig, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	sc.Cache = c

	sc.EventBus = events.NewEventBus(events.DefaultEventBusConfig(), sc.Logger)

	return nil
}

func (sc *ServiceCollection) initializeRepositories() error {
	repos, err := repositories.NewCollection(sc.DBManager, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize repository collection: %w", err)
	}
	sc.Repositories = repos
	return nil
}

func (sc *ServiceCollection) initializeServices() error {
	sc.BadgeService = NewBadgeService(sc.Catalog, sc.Repositories.Badge, sc.Cache, sc.EventBus, sc.Logger)
	sc.UserService = NewUserService(sc.Repositories.User, sc.Cache, sc.Logger)
	sc.RoundService = NewRoundService(sc.Repositories.Round, sc.Repositories.Prophecy, sc.BadgeService, sc.EventBus, sc.Logger)
	sc.ProphecyService = NewProphecyService(sc.Repositories.Prophecy, sc.Repositories.Round, sc.BadgeService, sc.EventBus, sc.Logger)
	sc.RatingService = NewRatingService(sc.Repositories.Rating, sc.Repositories.Prophecy, sc.Repositories.Round, sc.BadgeService, sc.EventBus, sc.Logger)
	sc.NotificationService = NewNotificationService(sc.Repositories.Notification, sc.EventBus, sc.Logger)

	return nil
}

// ===============================
// LIFECYCLE
// ===============================

// Start starts the event bus and wires event subscribers
func (sc *ServiceCollection) Start(ctx context.Context) error {
	if err := sc.EventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}

	if err := sc.NotificationService.Start(); err != nil {
		return fmt.Errorf("failed to start notification service: %w", err)
	}

	sc.Logger.Info("Service collection started")
	return nil
}

// Shutdown stops services in reverse dependency order
func (sc *ServiceCollection) Shutdown(ctx context.Context) error {
	sc.Logger.Info("Shutting down service collection")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := sc.EventBus.Stop(shutdownCtx); err != nil {
		sc.Logger.Warn("Event bus shutdown error", zap.Error(err))
	}

	if err := sc.Cache.Close(); err != nil {
		sc.Logger.Warn("Cache shutdown error", zap.Error(err))
	}

	if sc.Repositories != nil {
		if err := sc.Repositories.Close(); err != nil {
			return fmt.Errorf("failed to close repositories: %w", err)
		}
	}

	return nil
}

// HealthCheck aggregates health across infrastructure components.
// The top-level "status" key is "healthy" only when the database, the
// event bus and the cache all pass their checks.
func (sc *ServiceCollection) HealthCheck(ctx context.Context) map[string]interface{} {
	health := sc.Repositories.HealthCheck(ctx)

	healthy := sc.DBManager.Health(ctx).Status == database.StatusHealthy

	if err := sc.EventBus.Health(); err != nil {
		healthy = false
		health["event_bus"] = map[string]interface{}{"healthy": false, "error": err.Error()}
	} else {
		health["event_bus"] = map[string]interface{}{"healthy": true}
	}

	if err := sc.Cache.Health(ctx); err != nil {
		healthy = false
		health["cache"] = map[string]interface{}{"healthy": false, "error": err.Error()}
	} else {
		health["cache"] = map[string]interface{}{"healthy": true}
	}

	if healthy {
		health["status"] = database.StatusHealthy
	} else {
		health["status"] = database.StatusUnhealthy
	}

	return health
}

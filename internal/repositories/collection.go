// file: internal/repositories/collection.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"prophezeiung/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User         UserRepository
	Round        RoundRepository
	Prophecy     ProphecyRepository
	Rating       RatingRepository
	Badge        BadgeRepository
	Notification NotificationRepository

	// Database and logger for custom operations
	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	collection := &Collection{
		db:     db,
		logger: logger,

		User:         NewUserRepository(db, logger),
		Round:        NewRoundRepository(db, logger),
		Prophecy:     NewProphecyRepository(db, logger),
		Rating:       NewRatingRepository(db, logger),
		Badge:        NewBadgeRepository(db, logger),
		Notification: NewNotificationRepository(db, logger),
	}

	logger.Info("Repository collection initialized")

	return collection, nil
}

// ===============================
// HEALTH AND MONITORING
// ===============================

// HealthCheck reports database connectivity and query performance
func (c *Collection) HealthCheck(ctx context.Context) map[string]interface{} {
	health := make(map[string]interface{})

	dbHealth := c.db.Health(ctx)
	health["database"] = map[string]interface{}{
		"status":        dbHealth.Status,
		"ping_duration": dbHealth.PingDuration,
		"errors":        dbHealth.Errors,
	}

	health["repositories"] = map[string]interface{}{
		"badges": c.testRepositoryHealth(ctx, "badges", func() error {
			_, err := c.Badge.CountAwardsByBadge(ctx)
			return err
		}),
	}

	metrics := c.db.Metrics()
	health["performance"] = map[string]interface{}{
		"query_count":        metrics.QueryCount,
		"error_count":        metrics.ErrorCount,
		"slow_query_count":   metrics.SlowQueryCount,
		"avg_query_duration": metrics.AvgQueryDuration,
	}

	return health
}

// testRepositoryHealth runs a test operation for a repository
func (c *Collection) testRepositoryHealth(ctx context.Context, name string, testFn func() error) map[string]interface{} {
	start := time.Now()
	err := testFn()
	duration := time.Since(start)

	result := map[string]interface{}{
		"duration": duration,
		"healthy":  err == nil,
	}

	if err != nil {
		result["error"] = err.Error()
		c.logger.Warn("Repository health check failed",
			zap.String("repository", name),
			zap.Error(err),
			zap.Duration("duration", duration),
		)
	}

	return result
}

// GetDB returns the underlying database manager for advanced operations
func (c *Collection) GetDB() *database.Manager {
	return c.db
}

// GetLogger returns the logger instance
func (c *Collection) GetLogger() *zap.Logger {
	return c.logger
}

// Close closes all repository connections and cleans up resources
func (c *Collection) Close() error {
	c.logger.Info("Closing repository collection")

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// file: internal/database/health.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents the current database health
type HealthStatus struct {
	Status          string        `json:"status"`
	PingDuration    time.Duration `json:"ping_duration"`
	OpenConnections int           `json:"open_connections"`
	InUse           int           `json:"in_use"`
	Idle            int           `json:"idle"`
	Errors          []string      `json:"errors,omitempty"`
	CheckedAt       time.Time     `json:"checked_at"`
}

func checkHealth(ctx context.Context, db *sql.DB) *HealthStatus {
	status := &HealthStatus{
		Status:    StatusHealthy,
		CheckedAt: time.Now(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, fmt.Sprintf("ping failed: %v", err))
	}
	status.PingDuration = time.Since(start)

	stats := db.Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle

	// A saturated pool with queued waiters means requests are stalling
	if status.Status == StatusHealthy && stats.WaitCount > 0 && stats.InUse == stats.MaxOpenConnections {
		status.Status = StatusDegraded
		status.Errors = append(status.Errors, "connection pool saturated")
	}

	return status
}

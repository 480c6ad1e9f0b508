// file: internal/services/interface.go
package services

import (
	"context"

	"prophezeiung/internal/models"
)

// ===============================
// SERVICE INTERFACES
// ===============================

// UserService manages user accounts and the leaderboard
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, params models.PaginationParams) ([]*models.User, *models.PaginationMeta, error)
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// RoundService manages the round lifecycle: open, rating, resolved
type RoundService interface {
	CreateRound(ctx context.Context, req *CreateRoundRequest) (*models.Round, error)
	GetRound(ctx context.Context, id int64) (*models.Round, error)
	ListRounds(ctx context.Context, params models.PaginationParams) ([]*models.Round, *models.PaginationMeta, error)
	OpenRating(ctx context.Context, roundID int64) (*models.Round, error)
	ResolveRound(ctx context.Context, req *ResolveRoundRequest) (*models.Round, error)
}

// ProphecyService manages prophecy submission and retrieval
type ProphecyService interface {
	CreateProphecy(ctx context.Context, req *CreateProphecyRequest) (*models.Prophecy, error)
	GetProphecy(ctx context.Context, id int64) (*models.Prophecy, error)
	ListByRound(ctx context.Context, roundID int64, params models.PaginationParams) ([]*models.Prophecy, *models.PaginationMeta, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Prophecy, *models.PaginationMeta, error)
}

// RatingService manages prophecy ratings
type RatingService interface {
	RateProphecy(ctx context.Context, req *RateProphecyRequest) (*models.Rating, error)
	ListByProphecy(ctx context.Context, prophecyID int64) ([]*models.Rating, error)
}

// BadgeService runs badge evaluation and serves badge data.
type BadgeService interface {
	// EvaluateAndAward runs a full evaluation pass for a user: one
	// consistent activity read, the pure threshold evaluation, then an
	// idempotent insert per newly qualified badge. It returns only the
	// awards this pass persisted.
	EvaluateAndAward(ctx context.Context, userID int64) ([]*models.AwardedBadge, error)

	// AwardQualitative grants a non-thresholded badge directly. It
	// reports granted=false with a nil error when the user already
	// holds the badge.
	AwardQualitative(ctx context.Context, userID int64, badgeKey string) (bool, error)

	ListUserBadges(ctx context.Context, userID int64) ([]*models.AwardedBadge, error)
	ListCatalog(ctx context.Context) []models.BadgeDefinition
	GetBadgeStats(ctx context.Context) (map[string]int64, error)

	// GetBadgeProgress reports, per thresholded category, the user's
	// current count and the next unearned tier.
	GetBadgeProgress(ctx context.Context, userID int64) ([]*models.BadgeProgress, error)
}

// NotificationService manages per-user notifications
type NotificationService interface {
	ListNotifications(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Notification, *models.PaginationMeta, error)
	MarkRead(ctx context.Context, id, userID int64) error

	// Start subscribes the notification handlers to the event bus.
	Start() error
}

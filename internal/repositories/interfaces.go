// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"prophezeiung/internal/models"
)

// UserRepository handles user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, params models.PaginationParams) ([]*models.User, int64, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// RoundRepository handles round persistence
type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int64) (*models.Round, error)
	List(ctx context.Context, params models.PaginationParams) ([]*models.Round, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.RoundStatus, resolvedAt *time.Time) error
	ParticipantIDs(ctx context.Context, roundID int64) ([]int64, error)
}

// ProphecyRepository handles prophecy persistence
type ProphecyRepository interface {
	Create(ctx context.Context, prophecy *models.Prophecy) error
	GetByID(ctx context.Context, id int64) (*models.Prophecy, error)
	ListByRound(ctx context.Context, roundID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error)
	SetFulfilled(ctx context.Context, prophecyID int64, fulfilled bool) error
}

// RatingRepository handles rating persistence
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByProphecyAndUser(ctx context.Context, prophecyID, userID int64) (*models.Rating, error)
	ListByProphecy(ctx context.Context, prophecyID int64) ([]*models.Rating, error)
}

// BadgeRepository is the persistence contract of the badge engine:
// one consistent activity read, the held-badge set, and an idempotent
// insert-if-absent award write.
type BadgeRepository interface {
	// GetActivitySnapshot aggregates every count the thresholded badge
	// categories need, in a single consistent read.
	GetActivitySnapshot(ctx context.Context, userID int64) (*models.UserActivitySnapshot, error)

	// GetAwardedBadgeKeys returns the set of badge keys the user holds.
	GetAwardedBadgeKeys(ctx context.Context, userID int64) (map[string]struct{}, error)

	// InsertAwardIfAbsent persists an award exactly once. It reports
	// inserted=false with a nil error when the (user, badge) pair
	// already exists, including when a concurrent pass won the insert.
	InsertAwardIfAbsent(ctx context.Context, userID int64, badgeKey string, earnedAt time.Time) (bool, error)

	ListAwardedByUser(ctx context.Context, userID int64) ([]*models.AwardedBadge, error)
	CountAwardsByBadge(ctx context.Context) (map[string]int64, error)
}

// NotificationRepository handles notification persistence
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

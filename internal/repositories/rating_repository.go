// file: internal/repositories/rating_repository.go
package repositories

import (
	"context"
	"fmt"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// ratingRepository implements RatingRepository on PostgreSQL
type ratingRepository struct {
	*BaseRepository
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *database.Manager, logger *zap.Logger) RatingRepository {
	return &ratingRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create persists a rating. The (prophecy_id, user_id) unique constraint
// rejects a second rating from the same user.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (prophecy_id, user_id, score)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		rating.ProphecyID, rating.UserID, rating.Score,
	).Scan(&rating.ID, &rating.CreatedAt)

	if err != nil {
		if r.IsUniqueViolation(err) {
			return fmt.Errorf("user %d already rated prophecy %d: %w",
				rating.UserID, rating.ProphecyID, err)
		}
		if r.IsForeignKeyViolation(err) {
			return fmt.Errorf("prophecy %d or user %d does not exist: %w",
				rating.ProphecyID, rating.UserID, err)
		}
		r.GetLogger().Error("Failed to create rating",
			zap.Error(err),
			zap.Int64("prophecy_id", rating.ProphecyID),
			zap.Int64("user_id", rating.UserID),
		)
		return fmt.Errorf("failed to create rating: %w", err)
	}

	return nil
}

// GetByProphecyAndUser returns the rating a user gave a prophecy, or nil.
func (r *ratingRepository) GetByProphecyAndUser(ctx context.Context, prophecyID, userID int64) (*models.Rating, error) {
	query := `
		SELECT id, prophecy_id, user_id, score, created_at
		FROM ratings
		WHERE prophecy_id = $1 AND user_id = $2`

	var rating models.Rating
	err := r.QueryRowContext(ctx, query, prophecyID, userID).Scan(
		&rating.ID, &rating.ProphecyID, &rating.UserID, &rating.Score, &rating.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &rating, nil
}

// ListByProphecy returns all ratings of a prophecy, newest first.
func (r *ratingRepository) ListByProphecy(ctx context.Context, prophecyID int64) ([]*models.Rating, error) {
	query := `
		SELECT id, prophecy_id, user_id, score, created_at
		FROM ratings
		WHERE prophecy_id = $1
		ORDER BY created_at DESC`

	rows, err := r.QueryContext(ctx, query, prophecyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(
			&rating.ID, &rating.ProphecyID, &rating.UserID, &rating.Score, &rating.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	return ratings, nil
}

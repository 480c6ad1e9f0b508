// file: internal/repositories/badge_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// badgeRepository implements BadgeRepository on PostgreSQL
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetActivitySnapshot aggregates every count the thresholded badge
// categories compare against. All counts come from one SELECT, so the
// snapshot is a single consistent read with no torn counts.
func (r *badgeRepository) GetActivitySnapshot(ctx context.Context, userID int64) (*models.UserActivitySnapshot, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = $1) AS prophecies_created,
			(SELECT COUNT(*) FROM ratings rt WHERE rt.user_id = $1) AS ratings_given,
			(SELECT COUNT(DISTINCT p.round_id) FROM prophecies p WHERE p.user_id = $1) AS rounds_participated,
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = $1 AND p.fulfilled IS NOT NULL) AS resolved_prophecies,
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = $1 AND p.fulfilled = true) AS fulfilled_prophecies`

	snapshot := &models.UserActivitySnapshot{UserID: userID}
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.PropheciesCreated,
		&snapshot.RatingsGiven,
		&snapshot.RoundsParticipated,
		&snapshot.ResolvedProphecies,
		&snapshot.FulfilledProphecies,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity snapshot: %w", err)
	}

	// Accuracy only counts once the sample is large enough for the
	// ratio to mean anything.
	if snapshot.ResolvedProphecies >= models.AccuracyMinSample {
		snapshot.AccuracyPercent = snapshot.FulfilledProphecies * 100 / snapshot.ResolvedProphecies
	}

	return snapshot, nil
}

// GetAwardedBadgeKeys returns the set of badge keys the user holds.
func (r *badgeRepository) GetAwardedBadgeKeys(ctx context.Context, userID int64) (map[string]struct{}, error) {
	rows, err := r.QueryContext(ctx,
		`SELECT badge_key FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load awarded badge keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan badge key: %w", err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read awarded badge keys: %w", err)
	}

	return keys, nil
}

// InsertAwardIfAbsent appends an award exactly once per (user, badge).
// The uniqueness lives in the primary key; ON CONFLICT DO NOTHING
// turns a lost race into a reported no-op instead of an error, so two
// concurrent evaluation passes cannot double-award.
func (r *badgeRepository) InsertAwardIfAbsent(ctx context.Context, userID int64, badgeKey string, earnedAt time.Time) (bool, error) {
	result, err := r.ExecContext(ctx, `
		INSERT INTO user_badges (user_id, badge_key, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, badge_key) DO NOTHING`,
		userID, badgeKey, earnedAt,
	)
	if err != nil {
		// A raced insert can still surface as a unique violation on
		// some pg configurations; that is the already-awarded no-op.
		if r.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert badge award: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read award insert result: %w", err)
	}

	if affected > 0 {
		r.GetLogger().Info("Badge awarded",
			zap.Int64("user_id", userID),
			zap.String("badge_key", badgeKey),
		)
	}

	return affected > 0, nil
}

// ListAwardedByUser returns a user's badges, newest first.
func (r *badgeRepository) ListAwardedByUser(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT user_id, badge_key, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY earned_at DESC, badge_key ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded badges: %w", err)
	}
	defer rows.Close()

	var awards []*models.AwardedBadge
	for rows.Next() {
		var award models.AwardedBadge
		if err := rows.Scan(&award.UserID, &award.BadgeKey, &award.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan awarded badge: %w", err)
		}
		awards = append(awards, &award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read awarded badges: %w", err)
	}

	return awards, nil
}

// CountAwardsByBadge returns how many users hold each badge.
func (r *badgeRepository) CountAwardsByBadge(ctx context.Context) (map[string]int64, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT badge_key, COUNT(*)
		FROM user_badges
		GROUP BY badge_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to count awards: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan award count: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read award counts: %w", err)
	}

	return counts, nil
}

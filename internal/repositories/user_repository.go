// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository on PostgreSQL
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userStatsJoin = `
	LEFT JOIN LATERAL (
		SELECT
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = u.id) AS prophecies_count,
			(SELECT COUNT(*) FROM ratings rt WHERE rt.user_id = u.id) AS ratings_count,
			(SELECT COUNT(*) FROM user_badges ub WHERE ub.user_id = u.id) AS badges_count,
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = u.id AND p.fulfilled IS NOT NULL) AS resolved_count,
			(SELECT COUNT(*) FROM prophecies p WHERE p.user_id = u.id AND p.fulfilled = true) AS fulfilled_count
	) stats ON true`

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, display_name, bio)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at`

	err := r.QueryRowContext(ctx, query,
		user.Username, user.DisplayName, user.Bio,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt)

	if err != nil {
		if r.IsUniqueViolation(err) {
			return fmt.Errorf("username %q already taken: %w", user.Username, err)
		}
		r.GetLogger().Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return nil
}

// GetByID retrieves a user by ID with aggregated stats
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT
			u.id, u.username, u.display_name, u.bio, u.is_active,
			u.created_at, u.updated_at,
			stats.prophecies_count, stats.ratings_count, stats.badges_count,
			stats.resolved_count, stats.fulfilled_count
		FROM users u` + userStatsJoin + `
		WHERE u.id = $1 AND u.is_active = true`

	return r.scanUser(r.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username with aggregated stats
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT
			u.id, u.username, u.display_name, u.bio, u.is_active,
			u.created_at, u.updated_at,
			stats.prophecies_count, stats.ratings_count, stats.badges_count,
			stats.resolved_count, stats.fulfilled_count
		FROM users u` + userStatsJoin + `
		WHERE u.username = $1 AND u.is_active = true`

	return r.scanUser(r.QueryRowContext(ctx, query, username))
}

func (r *userRepository) scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var user models.User
	var resolved, fulfilled int

	err := row.Scan(
		&user.ID, &user.Username, &user.DisplayName, &user.Bio, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
		&user.PropheciesCount, &user.RatingsCount, &user.BadgesCount,
		&resolved, &fulfilled,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if resolved >= models.AccuracyMinSample {
		user.AccuracyPercent = fulfilled * 100 / resolved
	}

	return &user, nil
}

// List returns a page of active users
func (r *userRepository) List(ctx context.Context, params models.PaginationParams) ([]*models.User, int64, error) {
	params = r.NormalizePagination(params, map[string]bool{
		"created_at": true, "username": true,
	})

	total, err := r.GetTotalCount(ctx, `SELECT COUNT(*) FROM users WHERE is_active = true`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			u.id, u.username, u.display_name, u.bio, u.is_active,
			u.created_at, u.updated_at,
			stats.prophecies_count, stats.ratings_count, stats.badges_count,
			stats.resolved_count, stats.fulfilled_count
		FROM users u`+userStatsJoin+`
		WHERE u.is_active = true
		ORDER BY u.%s %s
		LIMIT $1 OFFSET $2`, params.Sort, params.Order)

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read users: %w", err)
	}

	return users, total, nil
}

// Leaderboard returns the top users ordered by badge count, then
// accuracy, then prophecy count.
func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT
			u.id, u.username,
			stats.badges_count, stats.prophecies_count,
			CASE WHEN stats.resolved_count >= $2
				THEN stats.fulfilled_count * 100 / stats.resolved_count
				ELSE 0
			END AS accuracy_percent
		FROM users u` + userStatsJoin + `
		WHERE u.is_active = true
		ORDER BY stats.badges_count DESC, accuracy_percent DESC, stats.prophecies_count DESC, u.id ASC
		LIMIT $1`

	rows, err := r.QueryContext(ctx, query, limit, models.AccuracyMinSample)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID, &entry.Username,
			&entry.BadgesCount, &entry.PropheciesCount, &entry.AccuracyPercent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return entries, nil
}

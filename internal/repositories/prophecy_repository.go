// file: internal/repositories/prophecy_repository.go
package repositories

import (
	"context"
	"fmt"
	"strings"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// prophecyRepository implements ProphecyRepository on PostgreSQL
type prophecyRepository struct {
	*BaseRepository
}

// NewProphecyRepository creates a new prophecy repository
func NewProphecyRepository(db *database.Manager, logger *zap.Logger) ProphecyRepository {
	return &prophecyRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const prophecySelect = `
	SELECT
		p.id, p.round_id, p.user_id, p.title, p.content, p.fulfilled, p.created_at,
		u.username,
		(SELECT COUNT(*) FROM ratings rt WHERE rt.prophecy_id = p.id) AS ratings_count,
		(SELECT AVG(rt.score)::float FROM ratings rt WHERE rt.prophecy_id = p.id) AS average_rating
	FROM prophecies p
	JOIN users u ON u.id = p.user_id`

// Create persists a new prophecy
func (r *prophecyRepository) Create(ctx context.Context, prophecy *models.Prophecy) error {
	query := `
		INSERT INTO prophecies (round_id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		prophecy.RoundID, prophecy.UserID, prophecy.Title, prophecy.Content,
	).Scan(&prophecy.ID, &prophecy.CreatedAt)

	if err != nil {
		if r.IsForeignKeyViolation(err) {
			return fmt.Errorf("round %d or user %d does not exist: %w",
				prophecy.RoundID, prophecy.UserID, err)
		}
		r.GetLogger().Error("Failed to create prophecy",
			zap.Error(err),
			zap.Int64("round_id", prophecy.RoundID),
			zap.Int64("user_id", prophecy.UserID),
		)
		return fmt.Errorf("failed to create prophecy: %w", err)
	}

	r.GetLogger().Info("Prophecy created",
		zap.Int64("prophecy_id", prophecy.ID),
		zap.Int64("round_id", prophecy.RoundID),
		zap.Int64("user_id", prophecy.UserID),
	)
	return nil
}

// GetByID retrieves a prophecy by ID
func (r *prophecyRepository) GetByID(ctx context.Context, id int64) (*models.Prophecy, error) {
	row := r.QueryRowContext(ctx, prophecySelect+` WHERE p.id = $1`, id)

	var prophecy models.Prophecy
	err := row.Scan(
		&prophecy.ID, &prophecy.RoundID, &prophecy.UserID,
		&prophecy.Title, &prophecy.Content, &prophecy.Fulfilled, &prophecy.CreatedAt,
		&prophecy.Username, &prophecy.RatingsCount, &prophecy.AverageRating,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prophecy: %w", err)
	}

	return &prophecy, nil
}

// ListByRound returns a page of a round's prophecies
func (r *prophecyRepository) ListByRound(ctx context.Context, roundID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error) {
	return r.list(ctx, `p.round_id = $3`, roundID, params)
}

// ListByUser returns a page of a user's prophecies
func (r *prophecyRepository) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error) {
	return r.list(ctx, `p.user_id = $3`, userID, params)
}

func (r *prophecyRepository) list(ctx context.Context, where string, arg int64, params models.PaginationParams) ([]*models.Prophecy, int64, error) {
	params = r.NormalizePagination(params, map[string]bool{
		"created_at": true, "title": true,
	})

	total, err := r.GetTotalCount(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM prophecies p WHERE %s`,
			strings.ReplaceAll(where, "$3", "$1")), arg)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count prophecies: %w", err)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.%s %s LIMIT $1 OFFSET $2`,
		prophecySelect, where, params.Sort, params.Order)

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset, arg)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prophecies: %w", err)
	}
	defer rows.Close()

	var prophecies []*models.Prophecy
	for rows.Next() {
		var prophecy models.Prophecy
		if err := rows.Scan(
			&prophecy.ID, &prophecy.RoundID, &prophecy.UserID,
			&prophecy.Title, &prophecy.Content, &prophecy.Fulfilled, &prophecy.CreatedAt,
			&prophecy.Username, &prophecy.RatingsCount, &prophecy.AverageRating,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan prophecy: %w", err)
		}
		prophecies = append(prophecies, &prophecy)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read prophecies: %w", err)
	}

	return prophecies, total, nil
}

// SetFulfilled records a prophecy's resolution outcome
func (r *prophecyRepository) SetFulfilled(ctx context.Context, prophecyID int64, fulfilled bool) error {
	result, err := r.ExecContext(ctx,
		`UPDATE prophecies SET fulfilled = $2 WHERE id = $1`,
		prophecyID, fulfilled,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve prophecy: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read prophecy update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("prophecy %d not found", prophecyID)
	}

	return nil
}

// file: internal/repositories/round_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// roundRepository implements RoundRepository on PostgreSQL
type roundRepository struct {
	*BaseRepository
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *database.Manager, logger *zap.Logger) RoundRepository {
	return &roundRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new round in the open state
func (r *roundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (title, description, status, submission_deadline, rating_deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		round.Title, round.Description, models.RoundOpen,
		round.SubmissionDeadline, round.RatingDeadline,
	).Scan(&round.ID, &round.CreatedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create round",
			zap.Error(err),
			zap.String("title", round.Title),
		)
		return fmt.Errorf("failed to create round: %w", err)
	}

	round.Status = models.RoundOpen
	r.GetLogger().Info("Round created",
		zap.Int64("round_id", round.ID),
		zap.String("title", round.Title),
	)
	return nil
}

// GetByID retrieves a round by ID
func (r *roundRepository) GetByID(ctx context.Context, id int64) (*models.Round, error) {
	query := `
		SELECT
			ro.id, ro.title, ro.description, ro.status,
			ro.submission_deadline, ro.rating_deadline, ro.resolved_at, ro.created_at,
			(SELECT COUNT(*) FROM prophecies p WHERE p.round_id = ro.id) AS prophecies_count
		FROM rounds ro
		WHERE ro.id = $1`

	var round models.Round
	err := r.QueryRowContext(ctx, query, id).Scan(
		&round.ID, &round.Title, &round.Description, &round.Status,
		&round.SubmissionDeadline, &round.RatingDeadline, &round.ResolvedAt, &round.CreatedAt,
		&round.PropheciesCount,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return &round, nil
}

// List returns a page of rounds, newest first by default
func (r *roundRepository) List(ctx context.Context, params models.PaginationParams) ([]*models.Round, int64, error) {
	params = r.NormalizePagination(params, map[string]bool{
		"created_at": true, "submission_deadline": true, "rating_deadline": true,
	})

	total, err := r.GetTotalCount(ctx, `SELECT COUNT(*) FROM rounds`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rounds: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			ro.id, ro.title, ro.description, ro.status,
			ro.submission_deadline, ro.rating_deadline, ro.resolved_at, ro.created_at,
			(SELECT COUNT(*) FROM prophecies p WHERE p.round_id = ro.id) AS prophecies_count
		FROM rounds ro
		ORDER BY ro.%s %s
		LIMIT $1 OFFSET $2`, params.Sort, params.Order)

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(
			&round.ID, &round.Title, &round.Description, &round.Status,
			&round.SubmissionDeadline, &round.RatingDeadline, &round.ResolvedAt, &round.CreatedAt,
			&round.PropheciesCount,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, &round)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read rounds: %w", err)
	}

	return rounds, total, nil
}

// UpdateStatus moves a round through its lifecycle
func (r *roundRepository) UpdateStatus(ctx context.Context, id int64, status models.RoundStatus, resolvedAt *time.Time) error {
	result, err := r.ExecContext(ctx,
		`UPDATE rounds SET status = $2, resolved_at = $3 WHERE id = $1`,
		id, status, resolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update round status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read round update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("round %d not found", id)
	}

	r.GetLogger().Info("Round status updated",
		zap.Int64("round_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

// ParticipantIDs returns the distinct users who submitted a prophecy
// in the round.
func (r *roundRepository) ParticipantIDs(ctx context.Context, roundID int64) ([]int64, error) {
	rows, err := r.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM prophecies WHERE round_id = $1 ORDER BY user_id`,
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load round participants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participants: %w", err)
	}

	return ids, nil
}

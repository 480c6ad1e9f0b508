// file: internal/repositories/notification_repository.go
package repositories

import (
	"context"
	"fmt"

	"prophezeiung/internal/database"
	"prophezeiung/internal/models"

	"go.uber.org/zap"
)

// notificationRepository implements NotificationRepository on PostgreSQL
type notificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.Manager, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create persists a notification
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, kind, payload)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		notification.UserID, notification.Kind, notification.Payload,
	).Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create notification",
			zap.Error(err),
			zap.Int64("user_id", notification.UserID),
			zap.String("kind", notification.Kind),
		)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser returns a page of a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Notification, int64, error) {
	params = r.NormalizePagination(params, map[string]bool{"created_at": true})

	total, err := r.GetTotalCount(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, kind, payload, read_at, created_at
		FROM notifications
		WHERE user_id = $3
		ORDER BY created_at %s
		LIMIT $1 OFFSET $2`, params.Order)

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Kind, &n.Payload, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, total, nil
}

// MarkRead stamps a notification as read. Scoped to the owning user so
// one user cannot acknowledge another's notifications. Marking an
// already-read notification keeps its original read_at and is a no-op;
// a notification that does not exist for the user yields ErrNotFound.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.ExecContext(ctx, `
		UPDATE notifications
		SET read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read notification update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`,
		id, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check notification existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	return nil
}

// file: internal/services/notification_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prophezeiung/internal/events"
	"prophezeiung/internal/models"
	"prophezeiung/internal/repositories"

	"go.uber.org/zap"
)

// notificationService implements NotificationService. It persists a
// notification for every badge awarded event on the bus.
type notificationService struct {
	notificationRepo repositories.NotificationRepository
	events           events.EventBus
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	events events.EventBus,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		events:           events,
		logger:           logger,
	}
}

// Start subscribes the badge awarded handler to the event bus
func (s *notificationService) Start() error {
	handler := events.EventHandlerFunc{
		ID:   "notification-badge-awarded",
		Func: s.handleBadgeAwarded,
	}

	if err := s.events.Subscribe(events.EventBadgeAwarded, handler); err != nil {
		return fmt.Errorf("failed to subscribe badge awarded handler: %w", err)
	}

	return nil
}

// handleBadgeAwarded persists a notification for a badge award
func (s *notificationService) handleBadgeAwarded(ctx context.Context, event events.Event) error {
	awarded, ok := event.(*events.BadgeAwardedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.GetEventType())
	}

	payload, err := json.Marshal(map[string]interface{}{
		"badge_key":  awarded.BadgeKey,
		"badge_name": awarded.BadgeName,
		"rarity":     awarded.Rarity,
		"earned_at":  awarded.EarnedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	notification := &models.Notification{
		UserID:  awarded.UserID,
		Kind:    "badge_awarded",
		Payload: string(payload),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to persist badge notification: %w", err)
	}

	s.logger.Debug("Badge notification created",
		zap.Int64("user_id", awarded.UserID),
		zap.String("badge_key", awarded.BadgeKey),
	)

	return nil
}

// ListNotifications returns a page of a user's notifications
func (s *notificationService) ListNotifications(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Notification, *models.PaginationMeta, error) {
	if userID <= 0 {
		return nil, nil, NewValidationError("invalid user ID", nil)
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, params)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err), zap.Int64("user_id", userID))
		return nil, nil, NewInternalError("failed to list notifications")
	}

	return notifications, buildMeta(params, total), nil
}

// MarkRead stamps a notification as read. Re-marking an already-read
// notification is a successful no-op.
func (s *notificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return NewValidationError("invalid notification ID", nil)
	}

	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return EntityNotFoundError("notification", id)
		}
		s.logger.Error("Failed to mark notification read",
			zap.Error(err),
			zap.Int64("notification_id", id),
			zap.Int64("user_id", userID),
		)
		return NewInternalError("failed to mark notification read")
	}

	return nil
}

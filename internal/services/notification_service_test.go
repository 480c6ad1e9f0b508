// file: internal/services/notification_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prophezeiung/internal/events"
	"prophezeiung/internal/models"
	"prophezeiung/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeNotificationRepo mirrors the real MarkRead semantics: unknown
// rows yield ErrNotFound, already-read rows are a no-op.
type fakeNotificationRepo struct {
	notifications map[int64]*models.Notification
	nextID        int64
	markErr       error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = f.nextID
	notification.CreatedAt = time.Now()
	f.nextID++
	copied := *notification
	f.notifications[notification.ID] = &copied
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return repositories.ErrNotFound
	}
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
	}
	return nil
}

func newTestNotificationService(t *testing.T) (NotificationService, *fakeNotificationRepo, events.EventBus) {
	t.Helper()
	repo := newFakeNotificationRepo()
	bus := events.NewEventBus(events.DefaultEventBusConfig(), zap.NewNop())

	service := NewNotificationService(repo, bus, zap.NewNop())
	require.NoError(t, service.Start())
	return service, repo, bus
}

// ===============================
// MARK READ TESTS
// ===============================

func TestMarkReadStampsNotification(t *testing.T) {
	service, repo, _ := newTestNotificationService(t)

	n := &models.Notification{UserID: 7, Kind: "badge_awarded", Payload: "{}"}
	require.NoError(t, repo.Create(context.Background(), n))

	require.NoError(t, service.MarkRead(context.Background(), n.ID, 7))
	require.NotNil(t, repo.notifications[n.ID].ReadAt)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	service, repo, _ := newTestNotificationService(t)

	n := &models.Notification{UserID: 7, Kind: "badge_awarded", Payload: "{}"}
	require.NoError(t, repo.Create(context.Background(), n))

	require.NoError(t, service.MarkRead(context.Background(), n.ID, 7))
	firstRead := *repo.notifications[n.ID].ReadAt

	require.NoError(t, service.MarkRead(context.Background(), n.ID, 7), "re-marking a read notification succeeds")
	assert.Equal(t, firstRead, *repo.notifications[n.ID].ReadAt, "the original read stamp is kept")
}

func TestMarkReadReturnsNotFoundForUnknownNotification(t *testing.T) {
	service, _, _ := newTestNotificationService(t)

	err := service.MarkRead(context.Background(), 999, 7)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestMarkReadScopedToOwner(t *testing.T) {
	service, repo, _ := newTestNotificationService(t)

	n := &models.Notification{UserID: 7, Kind: "badge_awarded", Payload: "{}"}
	require.NoError(t, repo.Create(context.Background(), n))

	err := service.MarkRead(context.Background(), n.ID, 8)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.Nil(t, repo.notifications[n.ID].ReadAt)
}

func TestMarkReadSurfacesRepositoryFailure(t *testing.T) {
	service, repo, _ := newTestNotificationService(t)
	repo.markErr = fmt.Errorf("connection reset")

	err := service.MarkRead(context.Background(), 1, 7)
	require.Error(t, err)
	assert.False(t, IsNotFoundError(err), "a transient failure is not a 404")
	assert.True(t, IsErrorType(err, "INTERNAL_ERROR"))
}

// ===============================
// EVENT SUBSCRIPTION TESTS
// ===============================

func TestBadgeAwardedEventCreatesNotification(t *testing.T) {
	_, repo, bus := newTestNotificationService(t)

	event := events.NewBadgeAwardedEvent(7, "creator_1", "First Prophecy", "bronze", time.Now().UTC())
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, repo.notifications, 1)
	for _, n := range repo.notifications {
		assert.Equal(t, int64(7), n.UserID)
		assert.Equal(t, "badge_awarded", n.Kind)
		assert.Contains(t, n.Payload, "creator_1")
	}
}

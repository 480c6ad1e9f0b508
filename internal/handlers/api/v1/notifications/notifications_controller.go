// file: internal/handlers/api/v1/notifications/notifications_controller.go
package notifications

import (
	"net/http"
	"strconv"

	"prophezeiung/internal/contextutils"
	"prophezeiung/internal/models"
	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationController serves the authenticated user's notifications.
type NotificationController struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewNotificationController creates a new notification controller
func NewNotificationController(sc *services.ServiceCollection, logger *zap.Logger, responseBuilder *response.Builder) *NotificationController {
	return &NotificationController{
		services:        sc,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// ListNotifications returns a page of the caller's notifications,
// newest first
//
//	GET /api/v1/notifications
func (c *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	if userID == 0 {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	notifications, meta, err := c.services.NotificationService.ListNotifications(r.Context(), userID, c.getPaginationParams(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, notifications, meta)
}

// MarkRead marks one of the caller's notifications as read
//
//	POST /api/v1/notifications/{notificationID}/read
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	if userID == 0 {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	notificationID, err := strconv.ParseInt(chi.URLParam(r, "notificationID"), 10, 64)
	if err != nil || notificationID <= 0 {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid notification ID", err))
		return
	}

	if err := c.services.NotificationService.MarkRead(r.Context(), notificationID, userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteNoContent(w, r)
}

func (c *NotificationController) getPaginationParams(r *http.Request) models.PaginationParams {
	params := models.PaginationParams{
		Limit: 20, // Default limit
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			params.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	return params
}

// file: internal/handlers/api/v1/badges/badges_controller.go
package badges

import (
	"net/http"
	"strconv"

	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BadgeController serves the badge catalog, per-user badges and
// progress toward the next tiers. Evaluation itself runs inside the
// prophecy, rating and round services and has no endpoint of its own.
type BadgeController struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewBadgeController creates a new badge controller
func NewBadgeController(sc *services.ServiceCollection, logger *zap.Logger, responseBuilder *response.Builder) *BadgeController {
	return &BadgeController{
		services:        sc,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// ListCatalog returns every badge definition in canonical order
//
//	GET /api/v1/badges
func (c *BadgeController) ListCatalog(w http.ResponseWriter, r *http.Request) {
	c.responseBuilder.WriteSuccess(w, r, c.services.BadgeService.ListCatalog(r.Context()))
}

// GetStats returns how many users hold each badge
//
//	GET /api/v1/badges/stats
func (c *BadgeController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.services.BadgeService.GetBadgeStats(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, stats)
}

// ListUserBadges returns a user's badges in catalog order
//
//	GET /api/v1/users/{userID}/badges
func (c *BadgeController) ListUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	badges, err := c.services.BadgeService.ListUserBadges(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, badges)
}

// GetProgress returns how far a user is from the next tier of each
// thresholded category.
//
//	GET /api/v1/users/{userID}/badges/progress
func (c *BadgeController) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	progress, err := c.services.BadgeService.GetBadgeProgress(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, progress)
}

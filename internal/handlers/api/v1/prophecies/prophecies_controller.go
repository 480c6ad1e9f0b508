// file: internal/handlers/api/v1/prophecies/prophecies_controller.go
package prophecies

import (
	"encoding/json"
	"net/http"
	"strconv"

	"prophezeiung/internal/contextutils"
	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProphecyController handles prophecy submission and rating endpoints.
type ProphecyController struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewProphecyController creates a new prophecy controller
func NewProphecyController(sc *services.ServiceCollection, logger *zap.Logger, responseBuilder *response.Builder) *ProphecyController {
	return &ProphecyController{
		services:        sc,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// CreateProphecy submits a prophecy for the authenticated user. The
// round must still be open for submissions.
//
//	POST /api/v1/prophecies
func (c *ProphecyController) CreateProphecy(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	if userID == 0 {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	var req services.CreateProphecyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = userID

	prophecy, err := c.services.ProphecyService.CreateProphecy(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, prophecy)
}

// GetProphecy returns a single prophecy with its rating summary
//
//	GET /api/v1/prophecies/{prophecyID}
func (c *ProphecyController) GetProphecy(w http.ResponseWriter, r *http.Request) {
	prophecyID, err := c.prophecyIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	prophecy, err := c.services.ProphecyService.GetProphecy(r.Context(), prophecyID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, prophecy)
}

// RateProphecy records the authenticated user's 1-5 rating of a
// prophecy. Authors cannot rate their own prophecies.
//
//	POST /api/v1/prophecies/{prophecyID}/ratings
func (c *ProphecyController) RateProphecy(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	if userID == 0 {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	prophecyID, err := c.prophecyIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.RateProphecyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ProphecyID = prophecyID
	req.UserID = userID

	rating, err := c.services.RatingService.RateProphecy(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, rating)
}

// ListRatings returns all ratings of a prophecy, newest first
//
//	GET /api/v1/prophecies/{prophecyID}/ratings
func (c *ProphecyController) ListRatings(w http.ResponseWriter, r *http.Request) {
	prophecyID, err := c.prophecyIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	ratings, err := c.services.RatingService.ListByProphecy(r.Context(), prophecyID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, ratings)
}

func (c *ProphecyController) prophecyIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "prophecyID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid prophecy ID", err)
	}
	return id, nil
}

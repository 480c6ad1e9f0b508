// file: internal/handlers/api/v1/rounds/rounds_controller.go
package rounds

import (
	"encoding/json"
	"net/http"
	"strconv"

	"prophezeiung/internal/models"
	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoundController handles the round lifecycle endpoints.
type RoundController struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewRoundController creates a new round controller
func NewRoundController(sc *services.ServiceCollection, logger *zap.Logger, responseBuilder *response.Builder) *RoundController {
	return &RoundController{
		services:        sc,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// CreateRound opens a new prediction round
//
//	POST /api/v1/rounds
func (c *RoundController) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	round, err := c.services.RoundService.CreateRound(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, round)
}

// GetRound returns a single round
//
//	GET /api/v1/rounds/{roundID}
func (c *RoundController) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := c.roundIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	round, err := c.services.RoundService.GetRound(r.Context(), roundID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, round)
}

// ListRounds returns a page of rounds, newest first
//
//	GET /api/v1/rounds
func (c *RoundController) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, meta, err := c.services.RoundService.ListRounds(r.Context(), c.getPaginationParams(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, rounds, meta)
}

// ListProphecies returns a page of the round's prophecies
//
//	GET /api/v1/rounds/{roundID}/prophecies
func (c *RoundController) ListProphecies(w http.ResponseWriter, r *http.Request) {
	roundID, err := c.roundIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	prophecies, meta, err := c.services.ProphecyService.ListByRound(r.Context(), roundID, c.getPaginationParams(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, prophecies, meta)
}

// OpenRating moves a round from the submission phase to the rating phase
//
//	POST /api/v1/rounds/{roundID}/rating
func (c *RoundController) OpenRating(w http.ResponseWriter, r *http.Request) {
	roundID, err := c.roundIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	round, err := c.services.RoundService.OpenRating(r.Context(), roundID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, round)
}

// ResolveRound records a verdict for every prophecy of the round and
// closes it. Badge evaluation runs for every participant.
//
//	POST /api/v1/rounds/{roundID}/resolve
func (c *RoundController) ResolveRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := c.roundIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.ResolveRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.RoundID = roundID

	round, err := c.services.RoundService.ResolveRound(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, round)
}

func (c *RoundController) roundIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid round ID", err)
	}
	return id, nil
}

func (c *RoundController) getPaginationParams(r *http.Request) models.PaginationParams {
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

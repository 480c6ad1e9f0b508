// file: internal/handlers/api/v1/users/users_controller.go
package users

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

// UserController handles user account and leaderboard endpoints.
type UserController struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewUserController creates a new user controller
func NewUserController(sc *services.ServiceCollection, logger *zap.Logger, responseBuilder *response.Builder) *UserController {
	return &UserController{
		services:        sc,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// CreateUser registers a new user account
//
//	POST /api/v1/users
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req services.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.services.UserService.CreateUser(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, user)
}

// GetUser returns a single user profile
//
//	GET /api/v1/users/{userID}
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := c.userIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	user, err := c.services.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, user)
}

// ListUsers returns a page of users
//
//	GET /api/v1/users
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, meta, err := c.services.UserService.ListUsers(r.Context(), c.getPaginationParams(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, users, meta)
}

// ListUserProphecies returns a page of the user's prophecies
//
//	GET /api/v1/users/{userID}/prophecies
func (c *UserController) ListUserProphecies(w http.ResponseWriter, r *http.Request) {
	userID, err := c.userIDParam(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	prophecies, meta, err := c.services.ProphecyService.ListByUser(r.Context(), userID, c.getPaginationParams(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, prophecies, meta)
}

// GetLeaderboard returns the top-rated prophets
//
//	GET /api/v1/leaderboard
func (c *UserController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	entries, err := c.services.UserService.GetLeaderboard(r.Context(), limit)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, entries)
}

func (c *UserController) userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid user ID", err)
	}
	return id, nil
}

func (c *UserController) getPaginationParams(r *http.Request) models.PaginationParams {
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

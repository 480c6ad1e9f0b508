// file: internal/services/user_service.go
package services

import (
	"context"
	"strings"
	"time"

	"prophezeiung/internal/cache"
	"prophezeiung/internal/models"
	"prophezeiung/internal/repositories"
	"prophezeiung/internal/validation"

	"go.uber.org/zap"
)

// userService implements UserService
type userService struct {
	userRepo repositories.UserRepository
	cache    cache.Cache
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	cache cache.Cache,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// CreateUser registers a new user
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid create user request", err)
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	if existing, _ := s.userRepo.GetByUsername(ctx, username); existing != nil {
		return nil, NewBusinessError("username already taken", "USERNAME_TAKEN")
	}

	user := &models.User{
		Username:    username,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Bio:         req.Bio,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, NewInternalError("failed to create user")
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}

// GetUserByID retrieves a user by ID with caching
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	cacheKey := cache.UserProfileKey(id)
	if cached, found := s.cache.Get(ctx, cacheKey); found {
		var user *models.User
		if cache.Decode(cached, &user) && user != nil {
			s.logger.Debug("User retrieved from cache", zap.Int64("user_id", id))
			return user, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get user by ID", zap.Error(err), zap.Int64("user_id", id))
		return nil, NewInternalError("failed to retrieve user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", id)
	}

	if err := s.cache.Set(ctx, cacheKey, user, 15*time.Minute); err != nil {
		s.logger.Warn("Failed to cache user", zap.Error(err), zap.Int64("user_id", id))
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, NewValidationError("username is required", nil)
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		s.logger.Error("Failed to get user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, NewInternalError("failed to retrieve user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", username)
	}

	return user, nil
}

// ListUsers returns a page of users
func (s *userService) ListUsers(ctx context.Context, params models.PaginationParams) ([]*models.User, *models.PaginationMeta, error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, nil, NewInternalError("failed to list users")
	}

	meta := buildMeta(params, total)
	return users, meta, nil
}

// GetLeaderboard returns the top users by badges, accuracy, prophecies
func (s *userService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cacheKey := cache.LeaderboardKey(limit)
	if cached, found := s.cache.Get(ctx, cacheKey); found {
		var entries []*models.LeaderboardEntry
		if cache.Decode(cached, &entries) {
			return entries, nil
		}
	}

	entries, err := s.userRepo.Leaderboard(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load leaderboard", zap.Error(err))
		return nil, NewInternalError("failed to load leaderboard")
	}

	if err := s.cache.Set(ctx, cacheKey, entries, 2*time.Minute); err != nil {
		s.logger.Warn("Failed to cache leaderboard", zap.Error(err))
	}

	return entries, nil
}

// buildMeta converts pagination params and a total into response metadata
func buildMeta(params models.PaginationParams, total int64) *models.PaginationMeta {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	currentPage := params.Offset/limit + 1

	return &models.PaginationMeta{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      currentPage < totalPages,
		HasPrev:      currentPage > 1,
	}
}

// file: internal/services/rating_service.go
package services

import (
	"context"
	"time"

	"prophezeiung/internal/events"
	"prophezeiung/internal/models"
	"prophezeiung/internal/repositories"
	"prophezeiung/internal/validation"

	"go.uber.org/zap"
)

// ratingService implements RatingService
type ratingService struct {
	ratingRepo   repositories.RatingRepository
	prophecyRepo repositories.ProphecyRepository
	roundRepo    repositories.RoundRepository
	badgeService BadgeService
	events       events.EventBus
	logger       *zap.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(
	ratingRepo repositories.RatingRepository,
	prophecyRepo repositories.ProphecyRepository,
	roundRepo repositories.RoundRepository,
	badgeService BadgeService,
	events events.EventBus,
	logger *zap.Logger,
) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		prophecyRepo: prophecyRepo,
		roundRepo:    roundRepo,
		badgeService: badgeService,
		events:       events,
		logger:       logger,
	}
}

// RateProphecy records a 1-5 score during the round's rating phase.
// Users cannot rate their own prophecies and cannot rate a prophecy
// twice. A successful rating runs a badge evaluation pass for the rater.
func (s *ratingService) RateProphecy(ctx context.Context, req *RateProphecyRequest) (*models.Rating, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid rating request", err)
	}

	prophecy, err := s.prophecyRepo.GetByID(ctx, req.ProphecyID)
	if err != nil {
		s.logger.Error("Failed to load prophecy for rating",
			zap.Error(err),
			zap.Int64("prophecy_id", req.ProphecyID),
		)
		return nil, NewInternalError("failed to submit rating")
	}
	if prophecy == nil {
		return nil, EntityNotFoundError("prophecy", req.ProphecyID)
	}
	if prophecy.UserID == req.UserID {
		return nil, NewBusinessError("users cannot rate their own prophecies", "SELF_RATING")
	}

	round, err := s.roundRepo.GetByID(ctx, prophecy.RoundID)
	if err != nil {
		s.logger.Error("Failed to load round for rating",
			zap.Error(err),
			zap.Int64("round_id", prophecy.RoundID),
		)
		return nil, NewInternalError("failed to submit rating")
	}
	if round == nil || !round.IsOpenForRating(time.Now()) {
		return nil, NewBusinessError("round is not accepting ratings", "ROUND_RATING_CLOSED")
	}

	existing, err := s.ratingRepo.GetByProphecyAndUser(ctx, req.ProphecyID, req.UserID)
	if err != nil {
		s.logger.Error("Failed to check for existing rating",
			zap.Error(err),
			zap.Int64("prophecy_id", req.ProphecyID),
			zap.Int64("user_id", req.UserID),
		)
		return nil, NewInternalError("failed to submit rating")
	}
	if existing != nil {
		return nil, NewConflictError("prophecy already rated by this user", "ALREADY_RATED")
	}

	rating := &models.Rating{
		ProphecyID: req.ProphecyID,
		UserID:     req.UserID,
		Score:      req.Score,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, NewConflictError("prophecy already rated by this user", "ALREADY_RATED")
		}
		s.logger.Error("Failed to create rating",
			zap.Error(err),
			zap.Int64("prophecy_id", req.ProphecyID),
			zap.Int64("user_id", req.UserID),
		)
		return nil, NewInternalError("failed to submit rating")
	}

	if err := s.events.Publish(ctx, events.NewRatingCreatedEvent(rating.ID, rating.ProphecyID, rating.UserID, rating.Score)); err != nil {
		s.logger.Warn("Failed to publish rating created event",
			zap.Error(err),
			zap.Int64("rating_id", rating.ID),
		)
	}

	// Rating can push the rater over a rater threshold.
	if _, err := s.badgeService.EvaluateAndAward(ctx, req.UserID); err != nil {
		s.logger.Error("Badge evaluation failed after rating",
			zap.Error(err),
			zap.Int64("user_id", req.UserID),
		)
	}

	return rating, nil
}

// ListByProphecy returns all ratings of a prophecy
func (s *ratingService) ListByProphecy(ctx context.Context, prophecyID int64) ([]*models.Rating, error) {
	if prophecyID <= 0 {
		return nil, NewValidationError("invalid prophecy ID", nil)
	}

	ratings, err := s.ratingRepo.ListByProphecy(ctx, prophecyID)
	if err != nil {
		s.logger.Error("Failed to list ratings", zap.Error(err), zap.Int64("prophecy_id", prophecyID))
		return nil, NewInternalError("failed to list ratings")
	}

	return ratings, nil
}

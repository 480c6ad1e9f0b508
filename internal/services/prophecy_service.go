// file: internal/services/prophecy_service.go
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

// prophecyService implements ProphecyService
type prophecyService struct {
	prophecyRepo repositories.ProphecyRepository
	roundRepo    repositories.RoundRepository
	badgeService BadgeService
	events       events.EventBus
	logger       *zap.Logger
}

// NewProphecyService creates a new prophecy service
func NewProphecyService(
	prophecyRepo repositories.ProphecyRepository,
	roundRepo repositories.RoundRepository,
	badgeService BadgeService,
	events events.EventBus,
	logger *zap.Logger,
) ProphecyService {
	return &prophecyService{
		prophecyRepo: prophecyRepo,
		roundRepo:    roundRepo,
		badgeService: badgeService,
		events:       events,
		logger:       logger,
	}
}

// CreateProphecy submits a prophecy into an open round and runs a
// badge evaluation pass for the author
func (s *prophecyService) CreateProphecy(ctx context.Context, req *CreateProphecyRequest) (*models.Prophecy, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid create prophecy request", err)
	}

	round, err := s.roundRepo.GetByID(ctx, req.RoundID)
	if err != nil {
		s.logger.Error("Failed to load round for prophecy submission",
			zap.Error(err),
			zap.Int64("round_id", req.RoundID),
		)
		return nil, NewInternalError("failed to submit prophecy")
	}
	if round == nil {
		return nil, EntityNotFoundError("round", req.RoundID)
	}
	if !round.IsOpenForSubmission(time.Now()) {
		return nil, NewBusinessError("round is not accepting prophecies", "ROUND_SUBMISSION_CLOSED")
	}

	prophecy := &models.Prophecy{
		RoundID: req.RoundID,
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.prophecyRepo.Create(ctx, prophecy); err != nil {
		s.logger.Error("Failed to create prophecy",
			zap.Error(err),
			zap.Int64("round_id", req.RoundID),
			zap.Int64("user_id", req.UserID),
		)
		return nil, NewInternalError("failed to submit prophecy")
	}

	if err := s.events.Publish(ctx, events.NewProphecyCreatedEvent(prophecy.ID, prophecy.RoundID, prophecy.UserID)); err != nil {
		s.logger.Warn("Failed to publish prophecy created event",
			zap.Error(err),
			zap.Int64("prophecy_id", prophecy.ID),
		)
	}

	// Submission can push the author over a creator or rounds threshold.
	if _, err := s.badgeService.EvaluateAndAward(ctx, req.UserID); err != nil {
		s.logger.Error("Badge evaluation failed after prophecy submission",
			zap.Error(err),
			zap.Int64("user_id", req.UserID),
		)
	}

	return prophecy, nil
}

// GetProphecy retrieves a prophecy by ID
func (s *prophecyService) GetProphecy(ctx context.Context, id int64) (*models.Prophecy, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid prophecy ID", nil)
	}

	prophecy, err := s.prophecyRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get prophecy", zap.Error(err), zap.Int64("prophecy_id", id))
		return nil, NewInternalError("failed to retrieve prophecy")
	}
	if prophecy == nil {
		return nil, EntityNotFoundError("prophecy", id)
	}

	return prophecy, nil
}

// ListByRound returns a page of a round's prophecies
func (s *prophecyService) ListByRound(ctx context.Context, roundID int64, params models.PaginationParams) ([]*models.Prophecy, *models.PaginationMeta, error) {
	if roundID <= 0 {
		return nil, nil, NewValidationError("invalid round ID", nil)
	}

	prophecies, total, err := s.prophecyRepo.ListByRound(ctx, roundID, params)
	if err != nil {
		s.logger.Error("Failed to list round prophecies", zap.Error(err), zap.Int64("round_id", roundID))
		return nil, nil, NewInternalError("failed to list prophecies")
	}

	return prophecies, buildMeta(params, total), nil
}

// ListByUser returns a page of a user's prophecies
func (s *prophecyService) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Prophecy, *models.PaginationMeta, error) {
	if userID <= 0 {
		return nil, nil, NewValidationError("invalid user ID", nil)
	}

	prophecies, total, err := s.prophecyRepo.ListByUser(ctx, userID, params)
	if err != nil {
		s.logger.Error("Failed to list user prophecies", zap.Error(err), zap.Int64("user_id", userID))
		return nil, nil, NewInternalError("failed to list prophecies")
	}

	return prophecies, buildMeta(params, total), nil
}

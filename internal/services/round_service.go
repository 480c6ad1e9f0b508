// file: internal/services/round_service.go
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

// roundService implements RoundService
type roundService struct {
	roundRepo    repositories.RoundRepository
	prophecyRepo repositories.ProphecyRepository
	badgeService BadgeService
	events       events.EventBus
	logger       *zap.Logger
}

// NewRoundService creates a new round service
func NewRoundService(
	roundRepo repositories.RoundRepository,
	prophecyRepo repositories.ProphecyRepository,
	badgeService BadgeService,
	events events.EventBus,
	logger *zap.Logger,
) RoundService {
	return &roundService{
		roundRepo:    roundRepo,
		prophecyRepo: prophecyRepo,
		badgeService: badgeService,
		events:       events,
		logger:       logger,
	}
}

// CreateRound opens a new round
func (s *roundService) CreateRound(ctx context.Context, req *CreateRoundRequest) (*models.Round, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid create round request", err)
	}

	now := time.Now()
	if !req.SubmissionDeadline.After(now) {
		return nil, InvalidInputError("submission_deadline", "must be in the future")
	}

	round := &models.Round{
		Title:              req.Title,
		Description:        req.Description,
		Status:             models.RoundOpen,
		SubmissionDeadline: req.SubmissionDeadline,
		RatingDeadline:     req.RatingDeadline,
	}

	if err := s.roundRepo.Create(ctx, round); err != nil {
		s.logger.Error("Failed to create round", zap.Error(err), zap.String("title", req.Title))
		return nil, NewInternalError("failed to create round")
	}

	s.logger.Info("Round created",
		zap.Int64("round_id", round.ID),
		zap.String("title", round.Title),
		zap.Time("submission_deadline", round.SubmissionDeadline),
	)

	return round, nil
}

// GetRound retrieves a round by ID
func (s *roundService) GetRound(ctx context.Context, id int64) (*models.Round, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid round ID", nil)
	}

	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get round", zap.Error(err), zap.Int64("round_id", id))
		return nil, NewInternalError("failed to retrieve round")
	}
	if round == nil {
		return nil, EntityNotFoundError("round", id)
	}

	return round, nil
}

// ListRounds returns a page of rounds
func (s *roundService) ListRounds(ctx context.Context, params models.PaginationParams) ([]*models.Round, *models.PaginationMeta, error) {
	rounds, total, err := s.roundRepo.List(ctx, params)
	if err != nil {
		s.logger.Error("Failed to list rounds", zap.Error(err))
		return nil, nil, NewInternalError("failed to list rounds")
	}

	return rounds, buildMeta(params, total), nil
}

// OpenRating moves a round from open to rating
func (s *roundService) OpenRating(ctx context.Context, roundID int64) (*models.Round, error) {
	round, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.Status != models.RoundOpen {
		return nil, NewBusinessError("only open rounds can enter the rating phase", "ROUND_NOT_OPEN")
	}

	if err := s.roundRepo.UpdateStatus(ctx, roundID, models.RoundRating, nil); err != nil {
		s.logger.Error("Failed to open rating phase", zap.Error(err), zap.Int64("round_id", roundID))
		return nil, NewInternalError("failed to update round status")
	}

	round.Status = models.RoundRating

	s.logger.Info("Round rating phase opened", zap.Int64("round_id", roundID))

	return round, nil
}

// ResolveRound records a verdict for every prophecy of the round,
// moves the round to resolved and runs a badge evaluation pass for
// every participant. A failed evaluation for one participant does not
// roll back the resolution or skip the remaining participants.
func (s *roundService) ResolveRound(ctx context.Context, req *ResolveRoundRequest) (*models.Round, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid resolve round request", err)
	}

	round, err := s.GetRound(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}

	if round.Status == models.RoundResolved {
		return nil, NewConflictError("round is already resolved", "ROUND_ALREADY_RESOLVED")
	}
	if round.Status != models.RoundRating {
		return nil, NewBusinessError("round must finish its rating phase before resolution", "ROUND_NOT_IN_RATING")
	}

	for _, outcome := range req.Outcomes {
		prophecy, err := s.prophecyRepo.GetByID(ctx, outcome.ProphecyID)
		if err != nil {
			s.logger.Error("Failed to load prophecy for resolution",
				zap.Error(err),
				zap.Int64("prophecy_id", outcome.ProphecyID),
			)
			return nil, NewInternalError("failed to resolve round")
		}
		if prophecy == nil {
			return nil, EntityNotFoundError("prophecy", outcome.ProphecyID)
		}
		if prophecy.RoundID != req.RoundID {
			return nil, NewBusinessError("prophecy belongs to a different round", "PROPHECY_ROUND_MISMATCH")
		}

		if err := s.prophecyRepo.SetFulfilled(ctx, outcome.ProphecyID, outcome.Fulfilled); err != nil {
			s.logger.Error("Failed to record prophecy verdict",
				zap.Error(err),
				zap.Int64("prophecy_id", outcome.ProphecyID),
			)
			return nil, NewInternalError("failed to resolve round")
		}
	}

	resolvedAt := time.Now().UTC()
	if err := s.roundRepo.UpdateStatus(ctx, req.RoundID, models.RoundResolved, &resolvedAt); err != nil {
		s.logger.Error("Failed to mark round resolved", zap.Error(err), zap.Int64("round_id", req.RoundID))
		return nil, NewInternalError("failed to resolve round")
	}

	round.Status = models.RoundResolved
	round.ResolvedAt = &resolvedAt

	participants, err := s.roundRepo.ParticipantIDs(ctx, req.RoundID)
	if err != nil {
		s.logger.Error("Failed to load round participants for badge evaluation",
			zap.Error(err),
			zap.Int64("round_id", req.RoundID),
		)
		participants = nil
	}

	if err := s.events.Publish(ctx, events.NewRoundResolvedEvent(req.RoundID, participants, resolvedAt)); err != nil {
		s.logger.Warn("Failed to publish round resolved event",
			zap.Error(err),
			zap.Int64("round_id", req.RoundID),
		)
	}

	for _, userID := range participants {
		if _, err := s.badgeService.EvaluateAndAward(ctx, userID); err != nil {
			s.logger.Error("Badge evaluation failed for participant",
				zap.Error(err),
				zap.Int64("round_id", req.RoundID),
				zap.Int64("user_id", userID),
			)
		}
	}

	s.logger.Info("Round resolved",
		zap.Int64("round_id", req.RoundID),
		zap.Int("outcomes", len(req.Outcomes)),
		zap.Int("participants", len(participants)),
	)

	return round, nil
}

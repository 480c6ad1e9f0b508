// file: internal/services/badge_service.go
package services

import (
	"context"
	"time"

	"prophezeiung/internal/badges"
	"prophezeiung/internal/cache"
	"prophezeiung/internal/events"
	"prophezeiung/internal/models"
	"prophezeiung/internal/repositories"

	"go.uber.org/zap"
)

// badgeService implements BadgeService on top of the immutable catalog
// and the badge repository
type badgeService struct {
	catalog   *badges.Catalog
	badgeRepo repositories.BadgeRepository
	cache     cache.Cache
	events    events.EventBus
	logger    *zap.Logger
}

// NewBadgeService creates a new badge service
func NewBadgeService(
	catalog *badges.Catalog,
	badgeRepo repositories.BadgeRepository,
	cache cache.Cache,
	events events.EventBus,
	logger *zap.Logger,
) BadgeService {
	return &badgeService{
		catalog:   catalog,
		badgeRepo: badgeRepo,
		cache:     cache,
		events:    events,
		logger:    logger,
	}
}

// ===============================
// EVALUATION
// ===============================

// EvaluateAndAward runs one evaluation pass for a user. The pass is
// all-or-nothing up front: if either the activity snapshot or the
// held-badge set cannot be read, no awards are attempted. Individual
// award inserts that lose a race to a concurrent pass count as
// successful no-ops, not failures.
func (s *badgeService) EvaluateAndAward(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	snapshot, err := s.badgeRepo.GetActivitySnapshot(ctx, userID)
	if err != nil {
		aggErr := &badges.AggregationError{UserID: userID, Cause: err}
		s.logger.Error("Badge evaluation aborted: activity aggregation failed",
			zap.Error(aggErr),
			zap.Int64("user_id", userID),
		)
		return nil, internalErrorFrom("failed to aggregate user activity", aggErr)
	}

	held, err := s.badgeRepo.GetAwardedBadgeKeys(ctx, userID)
	if err != nil {
		aggErr := &badges.AggregationError{UserID: userID, Cause: err}
		s.logger.Error("Badge evaluation aborted: held badge lookup failed",
			zap.Error(aggErr),
			zap.Int64("user_id", userID),
		)
		return nil, internalErrorFrom("failed to load awarded badges", aggErr)
	}

	qualified := badges.Evaluate(s.catalog, snapshot, held)
	if len(qualified) == 0 {
		return nil, nil
	}

	earnedAt := time.Now().UTC()
	awarded := make([]*models.AwardedBadge, 0, len(qualified))

	for i := range qualified {
		def := qualified[i]

		inserted, err := s.badgeRepo.InsertAwardIfAbsent(ctx, userID, def.Key, earnedAt)
		if err != nil {
			awardErr := &badges.AwardError{UserID: userID, BadgeKey: def.Key, Cause: err}
			s.logger.Error("Failed to persist badge award",
				zap.Error(awardErr),
				zap.Int64("user_id", userID),
				zap.String("badge_key", def.Key),
			)
			return nil, internalErrorFrom("failed to persist badge award", awardErr)
		}
		if !inserted {
			// A concurrent pass already wrote this award.
			continue
		}

		award := &models.AwardedBadge{
			UserID:   userID,
			BadgeKey: def.Key,
			EarnedAt: earnedAt,
			Badge:    &def,
		}
		awarded = append(awarded, award)

		s.publishAwarded(ctx, userID, &def, earnedAt)
	}

	if len(awarded) > 0 {
		s.invalidateUserCaches(ctx, userID)

		s.logger.Info("Badges awarded",
			zap.Int64("user_id", userID),
			zap.Int("count", len(awarded)),
		)
	}

	return awarded, nil
}

// AwardQualitative grants a badge that has no threshold, such as hidden
// or time-based badges triggered by a specific action.
func (s *badgeService) AwardQualitative(ctx context.Context, userID int64, badgeKey string) (bool, error) {
	if userID <= 0 {
		return false, NewValidationError("invalid user ID", nil)
	}

	def := s.catalog.ByKey(badgeKey)
	if def == nil {
		return false, EntityNotFoundError("badge", badgeKey)
	}
	if def.HasThreshold() {
		return false, NewBusinessError(
			"thresholded badges are awarded by evaluation, not directly",
			"BADGE_NOT_QUALITATIVE",
		)
	}

	earnedAt := time.Now().UTC()
	inserted, err := s.badgeRepo.InsertAwardIfAbsent(ctx, userID, def.Key, earnedAt)
	if err != nil {
		awardErr := &badges.AwardError{UserID: userID, BadgeKey: def.Key, Cause: err}
		s.logger.Error("Failed to persist qualitative badge award",
			zap.Error(awardErr),
			zap.Int64("user_id", userID),
			zap.String("badge_key", def.Key),
		)
		return false, internalErrorFrom("failed to persist badge award", awardErr)
	}
	if !inserted {
		return false, nil
	}

	s.publishAwarded(ctx, userID, def, earnedAt)
	s.invalidateUserCaches(ctx, userID)

	return true, nil
}

// ===============================
// QUERIES
// ===============================

// ListUserBadges returns a user's badges joined with catalog data,
// in the catalog's canonical order.
func (s *badgeService) ListUserBadges(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	awards, err := s.badgeRepo.ListAwardedByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user badges",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, NewInternalError("failed to list badges")
	}

	byKey := make(map[string]*models.AwardedBadge, len(awards))
	for _, award := range awards {
		award.Badge = s.catalog.ByKey(award.BadgeKey)
		byKey[award.BadgeKey] = award
	}

	// Catalog order, not insertion order. Awards whose key left the
	// catalog are appended at the end so history is never hidden.
	ordered := make([]*models.AwardedBadge, 0, len(awards))
	for _, def := range s.catalog.All() {
		if award, ok := byKey[def.Key]; ok {
			ordered = append(ordered, award)
			delete(byKey, def.Key)
		}
	}
	for _, award := range awards {
		if _, pending := byKey[award.BadgeKey]; pending {
			ordered = append(ordered, award)
			delete(byKey, award.BadgeKey)
		}
	}

	return ordered, nil
}

// ListCatalog returns every badge definition in canonical order
func (s *badgeService) ListCatalog(ctx context.Context) []models.BadgeDefinition {
	return s.catalog.All()
}

// GetBadgeStats returns how many users hold each badge
func (s *badgeService) GetBadgeStats(ctx context.Context) (map[string]int64, error) {
	cacheKey := cache.BadgeCountsKey()
	if cached, found := s.cache.Get(ctx, cacheKey); found {
		var counts map[string]int64
		if cache.Decode(cached, &counts) {
			return counts, nil
		}
	}

	counts, err := s.badgeRepo.CountAwardsByBadge(ctx)
	if err != nil {
		s.logger.Error("Failed to count badge awards", zap.Error(err))
		return nil, NewInternalError("failed to load badge stats")
	}

	if err := s.cache.Set(ctx, cacheKey, counts, 5*time.Minute); err != nil {
		s.logger.Warn("Failed to cache badge stats", zap.Error(err))
	}

	return counts, nil
}

// GetBadgeProgress reads one activity snapshot and reports, for each
// thresholded category in the catalog, the user's current count and
// the lowest unearned tier above it.
func (s *badgeService) GetBadgeProgress(ctx context.Context, userID int64) ([]*models.BadgeProgress, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	snapshot, err := s.badgeRepo.GetActivitySnapshot(ctx, userID)
	if err != nil {
		aggErr := &badges.AggregationError{UserID: userID, Cause: err}
		s.logger.Error("Failed to aggregate activity for progress",
			zap.Error(aggErr),
			zap.Int64("user_id", userID),
		)
		return nil, internalErrorFrom("failed to aggregate user activity", aggErr)
	}

	var progress []*models.BadgeProgress
	seen := make(map[models.BadgeCategory]bool)

	for _, def := range s.catalog.Thresholded() {
		if seen[def.Category] {
			continue
		}
		seen[def.Category] = true

		current, ok := snapshot.CountFor(def.Category)
		if !ok {
			continue
		}

		entry := &models.BadgeProgress{Category: def.Category, Current: current}
		for _, candidate := range s.catalog.ByCategory(def.Category) {
			if !candidate.HasThreshold() || *candidate.Threshold <= current {
				continue
			}
			if entry.NextBadge == nil || *candidate.Threshold < *entry.NextBadge.Threshold {
				next := candidate
				entry.NextBadge = &next
			}
		}
		if entry.NextBadge != nil {
			entry.Remaining = *entry.NextBadge.Threshold - current
		}
		progress = append(progress, entry)
	}

	return progress, nil
}

// ===============================
// SIDE EFFECTS
// ===============================

func (s *badgeService) publishAwarded(ctx context.Context, userID int64, def *models.BadgeDefinition, earnedAt time.Time) {
	event := events.NewBadgeAwardedEvent(userID, def.Key, def.Name, def.Rarity.String(), earnedAt)
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish badge awarded event",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("badge_key", def.Key),
		)
	}
}

func (s *badgeService) invalidateUserCaches(ctx context.Context, userID int64) {
	if err := s.cache.DeletePattern(ctx, cache.UserPattern(userID)); err != nil {
		s.logger.Warn("Failed to invalidate user cache",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}
	if err := s.cache.DeletePattern(ctx, cache.LeaderboardPattern()); err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, cache.BadgeCountsKey()); err != nil {
		s.logger.Warn("Failed to invalidate badge stats cache", zap.Error(err))
	}
}

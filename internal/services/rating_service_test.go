// file: internal/services/rating_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prophezeiung/internal/events"
	"prophezeiung/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRatingRepo struct {
	ratings   map[int64]*models.Rating
	nextID    int64
	lookupErr error
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[int64]*models.Rating), nextID: 1}
}

func (f *fakeRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	rating.ID = f.nextID
	rating.CreatedAt = time.Now()
	f.nextID++
	copied := *rating
	f.ratings[rating.ID] = &copied
	return nil
}

func (f *fakeRatingRepo) GetByProphecyAndUser(ctx context.Context, prophecyID, userID int64) (*models.Rating, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, r := range f.ratings {
		if r.ProphecyID == prophecyID && r.UserID == userID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) ListByProphecy(ctx context.Context, prophecyID int64) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range f.ratings {
		if r.ProphecyID == prophecyID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newTestRatingService(t *testing.T) (RatingService, *fakeRoundRepo, *fakeProphecyRepo, *fakeBadgeService) {
	t.Helper()
	ratingRepo := newFakeRatingRepo()
	roundRepo := newFakeRoundRepo()
	prophecyRepo := newFakeProphecyRepo()
	badgeService := &fakeBadgeService{}
	bus := events.NewEventBus(events.DefaultEventBusConfig(), zap.NewNop())

	service := NewRatingService(ratingRepo, prophecyRepo, roundRepo, badgeService, bus, zap.NewNop())
	return service, roundRepo, prophecyRepo, badgeService
}

func ratableProphecy(t *testing.T, roundRepo *fakeRoundRepo, prophecyRepo *fakeProphecyRepo, authorID int64) *models.Prophecy {
	t.Helper()
	round := ratingPhaseRound(t, roundRepo)
	prophecy := &models.Prophecy{RoundID: round.ID, UserID: authorID, Title: "t", Content: "c"}
	require.NoError(t, prophecyRepo.Create(context.Background(), prophecy))
	return prophecy
}

func TestRateProphecy(t *testing.T) {
	service, roundRepo, prophecyRepo, badgeService := newTestRatingService(t)
	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)

	rating, err := service.RateProphecy(context.Background(), &RateProphecyRequest{
		ProphecyID: prophecy.ID,
		UserID:     2,
		Score:      4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, []int64{2}, badgeService.evaluated, "the rater gets an evaluation pass")
}

func TestRateProphecyRejectsSelfRating(t *testing.T) {
	service, roundRepo, prophecyRepo, _ := newTestRatingService(t)
	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)

	_, err := service.RateProphecy(context.Background(), &RateProphecyRequest{
		ProphecyID: prophecy.ID,
		UserID:     1,
		Score:      5,
	})
	require.Error(t, err)
	assert.True(t, IsBusinessError(err))
}

func TestRateProphecyRejectsDuplicate(t *testing.T) {
	service, roundRepo, prophecyRepo, _ := newTestRatingService(t)
	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)

	req := &RateProphecyRequest{ProphecyID: prophecy.ID, UserID: 2, Score: 3}

	_, err := service.RateProphecy(context.Background(), req)
	require.NoError(t, err)

	_, err = service.RateProphecy(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestRateProphecySurfacesDuplicateLookupFailure(t *testing.T) {
	ratingRepo := newFakeRatingRepo()
	roundRepo := newFakeRoundRepo()
	prophecyRepo := newFakeProphecyRepo()
	badgeService := &fakeBadgeService{}
	bus := events.NewEventBus(events.DefaultEventBusConfig(), zap.NewNop())
	service := NewRatingService(ratingRepo, prophecyRepo, roundRepo, badgeService, bus, zap.NewNop())

	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)
	ratingRepo.lookupErr = fmt.Errorf("connection reset")

	_, err := service.RateProphecy(context.Background(), &RateProphecyRequest{
		ProphecyID: prophecy.ID,
		UserID:     2,
		Score:      4,
	})
	require.Error(t, err)
	assert.False(t, IsConflictError(err), "a failed lookup is not a duplicate")
	assert.True(t, IsErrorType(err, "INTERNAL_ERROR"))
	assert.Empty(t, badgeService.evaluated, "no evaluation pass when the rating was not written")
}

func TestRateProphecyRejectsOutOfRangeScore(t *testing.T) {
	service, roundRepo, prophecyRepo, _ := newTestRatingService(t)
	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)

	for _, score := range []int{0, 6, -1} {
		_, err := service.RateProphecy(context.Background(), &RateProphecyRequest{
			ProphecyID: prophecy.ID,
			UserID:     2,
			Score:      score,
		})
		require.Error(t, err, "score %d must be rejected", score)
		assert.True(t, IsValidationError(err))
	}
}

func TestRateProphecyRejectsClosedRound(t *testing.T) {
	service, roundRepo, prophecyRepo, _ := newTestRatingService(t)
	prophecy := ratableProphecy(t, roundRepo, prophecyRepo, 1)
	roundRepo.rounds[prophecy.RoundID].Status = models.RoundResolved

	_, err := service.RateProphecy(context.Background(), &RateProphecyRequest{
		ProphecyID: prophecy.ID,
		UserID:     2,
		Score:      4,
	})
	require.Error(t, err)
	assert.True(t, IsBusinessError(err))
}

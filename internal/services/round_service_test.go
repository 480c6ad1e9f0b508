// file: internal/services/round_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"prophezeiung/internal/events"
	"prophezeiung/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===============================
// FAKES
// ===============================

type fakeRoundRepo struct {
	rounds       map[int64]*models.Round
	participants map[int64][]int64
	nextID       int64
}

func newFakeRoundRepo() *fakeRoundRepo {
	return &fakeRoundRepo{
		rounds:       make(map[int64]*models.Round),
		participants: make(map[int64][]int64),
		nextID:       1,
	}
}

func (f *fakeRoundRepo) Create(ctx context.Context, round *models.Round) error {
	round.ID = f.nextID
	round.CreatedAt = time.Now()
	f.nextID++
	copied := *round
	f.rounds[round.ID] = &copied
	return nil
}

func (f *fakeRoundRepo) GetByID(ctx context.Context, id int64) (*models.Round, error) {
	round, ok := f.rounds[id]
	if !ok {
		return nil, nil
	}
	copied := *round
	return &copied, nil
}

func (f *fakeRoundRepo) List(ctx context.Context, params models.PaginationParams) ([]*models.Round, int64, error) {
	out := make([]*models.Round, 0, len(f.rounds))
	for _, r := range f.rounds {
		copied := *r
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRoundRepo) UpdateStatus(ctx context.Context, id int64, status models.RoundStatus, resolvedAt *time.Time) error {
	round, ok := f.rounds[id]
	if !ok {
		return EntityNotFoundError("round", id)
	}
	round.Status = status
	round.ResolvedAt = resolvedAt
	return nil
}

func (f *fakeRoundRepo) ParticipantIDs(ctx context.Context, roundID int64) ([]int64, error) {
	return f.participants[roundID], nil
}

type fakeProphecyRepo struct {
	prophecies map[int64]*models.Prophecy
	nextID     int64
}

func newFakeProphecyRepo() *fakeProphecyRepo {
	return &fakeProphecyRepo{prophecies: make(map[int64]*models.Prophecy), nextID: 1}
}

func (f *fakeProphecyRepo) Create(ctx context.Context, prophecy *models.Prophecy) error {
	prophecy.ID = f.nextID
	prophecy.CreatedAt = time.Now()
	f.nextID++
	copied := *prophecy
	f.prophecies[prophecy.ID] = &copied
	return nil
}

func (f *fakeProphecyRepo) GetByID(ctx context.Context, id int64) (*models.Prophecy, error) {
	prophecy, ok := f.prophecies[id]
	if !ok {
		return nil, nil
	}
	copied := *prophecy
	return &copied, nil
}

func (f *fakeProphecyRepo) ListByRound(ctx context.Context, roundID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error) {
	var out []*models.Prophecy
	for _, p := range f.prophecies {
		if p.RoundID == roundID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProphecyRepo) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) ([]*models.Prophecy, int64, error) {
	var out []*models.Prophecy
	for _, p := range f.prophecies {
		if p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProphecyRepo) SetFulfilled(ctx context.Context, prophecyID int64, fulfilled bool) error {
	prophecy, ok := f.prophecies[prophecyID]
	if !ok {
		return EntityNotFoundError("prophecy", prophecyID)
	}
	v := fulfilled
	prophecy.Fulfilled = &v
	return nil
}

// fakeBadgeService records which users went through an evaluation pass
type fakeBadgeService struct {
	evaluated []int64
	err       error
}

func (f *fakeBadgeService) EvaluateAndAward(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	f.evaluated = append(f.evaluated, userID)
	return nil, f.err
}

func (f *fakeBadgeService) AwardQualitative(ctx context.Context, userID int64, badgeKey string) (bool, error) {
	return false, nil
}

func (f *fakeBadgeService) ListUserBadges(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	return nil, nil
}

func (f *fakeBadgeService) ListCatalog(ctx context.Context) []models.BadgeDefinition { return nil }

func (f *fakeBadgeService) GetBadgeStats(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

func (f *fakeBadgeService) GetBadgeProgress(ctx context.Context, userID int64) ([]*models.BadgeProgress, error) {
	return nil, nil
}

// ===============================
// FIXTURES
// ===============================

func newTestRoundService(t *testing.T) (RoundService, *fakeRoundRepo, *fakeProphecyRepo, *fakeBadgeService) {
	t.Helper()
	roundRepo := newFakeRoundRepo()
	prophecyRepo := newFakeProphecyRepo()
	badgeService := &fakeBadgeService{}
	bus := events.NewEventBus(events.DefaultEventBusConfig(), zap.NewNop())

	service := NewRoundService(roundRepo, prophecyRepo, badgeService, bus, zap.NewNop())
	return service, roundRepo, prophecyRepo, badgeService
}

func ratingPhaseRound(t *testing.T, repo *fakeRoundRepo) *models.Round {
	t.Helper()
	round := &models.Round{
		Title:              "Q3 Predictions",
		Status:             models.RoundRating,
		SubmissionDeadline: time.Now().Add(-time.Hour),
		RatingDeadline:     time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), round))
	repo.rounds[round.ID].Status = models.RoundRating
	return round
}

// ===============================
// TESTS
// ===============================

func TestCreateRoundValidatesDeadlines(t *testing.T) {
	service, _, _, _ := newTestRoundService(t)

	_, err := service.CreateRound(context.Background(), &CreateRoundRequest{
		Title:              "Past Round",
		SubmissionDeadline: time.Now().Add(-time.Hour),
		RatingDeadline:     time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreateRoundStartsOpen(t *testing.T) {
	service, _, _, _ := newTestRoundService(t)

	round, err := service.CreateRound(context.Background(), &CreateRoundRequest{
		Title:              "Next Quarter",
		SubmissionDeadline: time.Now().Add(24 * time.Hour),
		RatingDeadline:     time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoundOpen, round.Status)
	assert.True(t, round.IsOpenForSubmission(time.Now()))
}

func TestOpenRatingRequiresOpenRound(t *testing.T) {
	service, roundRepo, _, _ := newTestRoundService(t)
	round := ratingPhaseRound(t, roundRepo)

	_, err := service.OpenRating(context.Background(), round.ID)
	require.Error(t, err)
	assert.True(t, IsBusinessError(err))
}

func TestResolveRoundRecordsVerdictsAndEvaluatesParticipants(t *testing.T) {
	service, roundRepo, prophecyRepo, badgeService := newTestRoundService(t)
	round := ratingPhaseRound(t, roundRepo)

	p1 := &models.Prophecy{RoundID: round.ID, UserID: 1, Title: "t", Content: "c"}
	p2 := &models.Prophecy{RoundID: round.ID, UserID: 2, Title: "t", Content: "c"}
	require.NoError(t, prophecyRepo.Create(context.Background(), p1))
	require.NoError(t, prophecyRepo.Create(context.Background(), p2))
	roundRepo.participants[round.ID] = []int64{1, 2}

	resolved, err := service.ResolveRound(context.Background(), &ResolveRoundRequest{
		RoundID: round.ID,
		Outcomes: []ProphecyOutcome{
			{ProphecyID: p1.ID, Fulfilled: true},
			{ProphecyID: p2.ID, Fulfilled: false},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoundResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	stored, err := prophecyRepo.GetByID(context.Background(), p1.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Fulfilled)
	assert.True(t, *stored.Fulfilled)

	assert.ElementsMatch(t, []int64{1, 2}, badgeService.evaluated,
		"every participant gets an evaluation pass")
}

func TestResolveRoundRejectsAlreadyResolved(t *testing.T) {
	service, roundRepo, prophecyRepo, _ := newTestRoundService(t)
	round := ratingPhaseRound(t, roundRepo)

	p := &models.Prophecy{RoundID: round.ID, UserID: 1, Title: "t", Content: "c"}
	require.NoError(t, prophecyRepo.Create(context.Background(), p))

	req := &ResolveRoundRequest{
		RoundID:  round.ID,
		Outcomes: []ProphecyOutcome{{ProphecyID: p.ID, Fulfilled: true}},
	}

	_, err := service.ResolveRound(context.Background(), req)
	require.NoError(t, err)

	_, err = service.ResolveRound(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestResolveRoundRejectsForeignProphecy(t *testing.T) {
	service, roundRepo, prophecyRepo, badgeService := newTestRoundService(t)
	round := ratingPhaseRound(t, roundRepo)
	other := ratingPhaseRound(t, roundRepo)

	p := &models.Prophecy{RoundID: other.ID, UserID: 1, Title: "t", Content: "c"}
	require.NoError(t, prophecyRepo.Create(context.Background(), p))

	_, err := service.ResolveRound(context.Background(), &ResolveRoundRequest{
		RoundID:  round.ID,
		Outcomes: []ProphecyOutcome{{ProphecyID: p.ID, Fulfilled: true}},
	})
	require.Error(t, err)
	assert.True(t, IsBusinessError(err))
	assert.Empty(t, badgeService.evaluated)
}

func TestResolveRoundContinuesWhenEvaluationFails(t *testing.T) {
	service, roundRepo, prophecyRepo, badgeService := newTestRoundService(t)
	round := ratingPhaseRound(t, roundRepo)
	badgeService.err = NewInternalError("aggregation failed")

	p := &models.Prophecy{RoundID: round.ID, UserID: 1, Title: "t", Content: "c"}
	require.NoError(t, prophecyRepo.Create(context.Background(), p))
	roundRepo.participants[round.ID] = []int64{1, 2}

	resolved, err := service.ResolveRound(context.Background(), &ResolveRoundRequest{
		RoundID:  round.ID,
		Outcomes: []ProphecyOutcome{{ProphecyID: p.ID, Fulfilled: false}},
	})
	require.NoError(t, err, "a failed evaluation never rolls back the resolution")
	assert.Equal(t, models.RoundResolved, resolved.Status)
	assert.ElementsMatch(t, []int64{1, 2}, badgeService.evaluated,
		"one participant's failure does not skip the rest")
}

// file: internal/badges/evaluator_test.go
package badges

import (
	"testing"

	"prophezeiung/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creatorLadder(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog("inline", []models.BadgeDefinition{
		def("creator_1", models.CategoryCreator, models.RarityBronze, intPtr(1)),
		def("creator_5", models.CategoryCreator, models.RarityBronze, intPtr(5)),
		def("creator_15", models.CategoryCreator, models.RaritySilver, intPtr(15)),
		def("creator_30", models.CategoryCreator, models.RarityGold, intPtr(30)),
		def("creator_50", models.CategoryCreator, models.RarityLegendary, intPtr(50)),
		def("rater_25", models.CategoryRater, models.RaritySilver, intPtr(25)),
		def("night_owl", models.CategoryHidden, models.RarityGold, nil),
	})
	require.NoError(t, err)
	return catalog
}

func held(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func TestEvaluateAwardsAllQualifiedTiers(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{PropheciesCreated: 50}

	qualified := Evaluate(catalog, snapshot, held())

	keys := make([]string, 0, len(qualified))
	for _, d := range qualified {
		keys = append(keys, d.Key)
	}
	// Jumping 0 -> 50 earns every tier at once, not just the highest.
	assert.Equal(t, []string{"creator_50", "creator_30", "creator_15", "creator_1", "creator_5"}, keys)
}

func TestEvaluateExcludesHeldBadges(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{PropheciesCreated: 5}

	qualified := Evaluate(catalog, snapshot, held("creator_1"))

	require.Len(t, qualified, 1)
	assert.Equal(t, "creator_5", qualified[0].Key)
}

func TestEvaluateBelowThreshold(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{PropheciesCreated: 0, RatingsGiven: 24}

	assert.Empty(t, Evaluate(catalog, snapshot, held()))
}

func TestEvaluateNeverReturnsQualitativeBadges(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{
		PropheciesCreated:  100,
		RatingsGiven:       100,
		RoundsParticipated: 100,
	}

	for _, d := range Evaluate(catalog, snapshot, held()) {
		assert.NotEqual(t, "night_owl", d.Key)
		assert.True(t, d.HasThreshold())
	}
}

func TestEvaluateDeterministicOrdering(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{PropheciesCreated: 30, RatingsGiven: 25}
	already := held("creator_1")

	first := Evaluate(catalog, snapshot, already)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(catalog, snapshot, already))
	}
}

func TestEvaluatePureFunction(t *testing.T) {
	catalog := creatorLadder(t)
	snapshot := &models.UserActivitySnapshot{PropheciesCreated: 5}

	before := *snapshot
	_ = Evaluate(catalog, snapshot, held())
	assert.Equal(t, before, *snapshot, "evaluation must not mutate the snapshot")
	assert.Equal(t, 7, catalog.Len(), "evaluation must not mutate the catalog")
}

func TestEvaluateAccuracyUsesPercent(t *testing.T) {
	catalog, err := NewCatalog("inline", []models.BadgeDefinition{
		def("accuracy_60", models.CategoryAccuracy, models.RaritySilver, intPtr(60)),
		def("accuracy_90", models.CategoryAccuracy, models.RarityLegendary, intPtr(90)),
	})
	require.NoError(t, err)

	snapshot := &models.UserActivitySnapshot{AccuracyPercent: 75}
	qualified := Evaluate(catalog, snapshot, held())

	require.Len(t, qualified, 1)
	assert.Equal(t, "accuracy_60", qualified[0].Key)
}

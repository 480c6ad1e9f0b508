// file: internal/badges/catalog_test.go
package badges

import (
	"testing"

	"prophezeiung/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func def(key string, category models.BadgeCategory, rarity models.Rarity, threshold *int) models.BadgeDefinition {
	return models.BadgeDefinition{
		Key:         key,
		Name:        "Badge " + key,
		Description: "Description for " + key,
		Requirement: "Requirement for " + key,
		Category:    category,
		Rarity:      rarity,
		Threshold:   threshold,
	}
}

func TestNewCatalogValid(t *testing.T) {
	catalog, err := NewCatalog("inline", []models.BadgeDefinition{
		def("creator_1", models.CategoryCreator, models.RarityBronze, intPtr(1)),
		def("creator_5", models.CategoryCreator, models.RaritySilver, intPtr(5)),
		def("night_owl", models.CategoryHidden, models.RarityGold, nil),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())
	assert.Equal(t, 2, len(catalog.Thresholded()), "hidden badge must not be thresholded")
	assert.NotNil(t, catalog.ByKey("creator_5"))
	assert.Nil(t, catalog.ByKey("missing"))
	assert.Len(t, catalog.ByCategory(models.CategoryCreator), 2)
}

func TestNewCatalogRejectsDuplicateKeys(t *testing.T) {
	_, err := NewCatalog("inline", []models.BadgeDefinition{
		def("creator_1", models.CategoryCreator, models.RarityBronze, intPtr(1)),
		def("creator_1", models.CategoryCreator, models.RaritySilver, intPtr(5)),
	})

	require.Error(t, err)
	catErr, ok := err.(*CatalogError)
	require.True(t, ok, "expected a CatalogError")
	assert.Contains(t, catErr.Problems[0], "duplicate badge key")
}

func TestNewCatalogRejectsMissingFields(t *testing.T) {
	bad := def("", models.CategoryCreator, models.RarityBronze, intPtr(1))
	bad.Name = ""

	_, err := NewCatalog("inline", []models.BadgeDefinition{bad})
	require.Error(t, err)
	assert.IsType(t, &CatalogError{}, err)
}

func TestNewCatalogRejectsUnknownCategory(t *testing.T) {
	_, err := NewCatalog("inline", []models.BadgeDefinition{
		def("weird", models.BadgeCategory("bogus"), models.RarityBronze, nil),
	})
	require.Error(t, err)
}

func TestNewCatalogRejectsThresholdOnQualitativeCategory(t *testing.T) {
	_, err := NewCatalog("inline", []models.BadgeDefinition{
		def("sneaky", models.CategoryHidden, models.RarityGold, intPtr(3)),
	})
	require.Error(t, err)
	catErr := err.(*CatalogError)
	assert.Contains(t, catErr.Problems[0], "does not support thresholds")
}

func TestNewCatalogRejectsEmpty(t *testing.T) {
	_, err := NewCatalog("inline", nil)
	require.Error(t, err)
}

func TestCatalogCanonicalOrder(t *testing.T) {
	catalog, err := NewCatalog("inline", []models.BadgeDefinition{
		def("rater_10", models.CategoryRater, models.RarityBronze, intPtr(10)),
		def("creator_50", models.CategoryCreator, models.RarityLegendary, intPtr(50)),
		def("creator_5", models.CategoryCreator, models.RaritySilver, intPtr(5)),
		def("creator_15", models.CategoryCreator, models.RaritySilver, intPtr(15)),
		def("accuracy_90", models.CategoryAccuracy, models.RarityGold, intPtr(90)),
	})
	require.NoError(t, err)

	keys := make([]string, 0, catalog.Len())
	for _, d := range catalog.All() {
		keys = append(keys, d.Key)
	}

	// category asc, rarity asc (legendary first), threshold asc
	assert.Equal(t, []string{"accuracy_90", "creator_50", "creator_5", "creator_15", "rater_10"}, keys)
}

func TestParseCatalogYAML(t *testing.T) {
	doc := []byte(`
version: 1
badges:
  - key: creator_1
    name: First Prophecy
    description: Submitted a prophecy.
    requirement: Submit 1 prophecy.
    category: creator
    rarity: bronze
    threshold: 1
  - key: night_owl
    name: Night Owl
    description: Prophesied in the dead of night.
    requirement: Submit a prophecy between 2am and 4am.
    category: hidden
    rarity: gold
`)

	catalog, err := ParseCatalog("inline", doc)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	first := catalog.ByKey("creator_1")
	require.NotNil(t, first)
	assert.Equal(t, models.RarityBronze, first.Rarity)
	require.NotNil(t, first.Threshold)
	assert.Equal(t, 1, *first.Threshold)

	owl := catalog.ByKey("night_owl")
	require.NotNil(t, owl)
	assert.False(t, owl.HasThreshold())
}

func TestParseCatalogMalformedYAML(t *testing.T) {
	_, err := ParseCatalog("inline", []byte("badges: [unclosed"))
	require.Error(t, err)
	assert.IsType(t, &CatalogError{}, err)
}

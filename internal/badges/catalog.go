// file: internal/badges/catalog.go
package badges

import (
	"fmt"
	"os"

	"prophezeiung/internal/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ===============================
// CATALOG
// ===============================

// Catalog is the process-wide, read-only table of badge definitions.
// It is built once at startup and safely shared across concurrent
// evaluations without locking.
type Catalog struct {
	ordered     []models.BadgeDefinition
	byKey       map[string]*models.BadgeDefinition
	byCategory  map[models.BadgeCategory][]models.BadgeDefinition
	thresholded []models.BadgeDefinition
}

// catalogFile is the on-disk shape of the catalog artifact.
type catalogFile struct {
	Version int                      `yaml:"version"`
	Badges  []models.BadgeDefinition `yaml:"badges"`
}

var validate = validator.New()

// LoadCatalog reads and validates the badge catalog from a YAML file.
// Duplicate keys or entries missing required fields reject the whole
// catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Cause: err}
	}
	return ParseCatalog(path, data)
}

// ParseCatalog builds a catalog from raw YAML. Split from LoadCatalog
// so tests can feed inline documents.
func ParseCatalog(source string, data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &CatalogError{Source: source, Cause: err}
	}
	return NewCatalog(source, file.Badges)
}

// NewCatalog validates definitions and builds the lookup structures.
func NewCatalog(source string, defs []models.BadgeDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, &CatalogError{Source: source, Problems: []string{"catalog contains no badge definitions"}}
	}

	var problems []string
	seen := make(map[string]bool, len(defs))

	for i := range defs {
		def := &defs[i]

		if err := validate.Struct(def); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrs {
					problems = append(problems,
						fmt.Sprintf("badge %q: field %s failed %q", def.Key, fe.Field(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("badge %q: %v", def.Key, err))
			}
		}
		if !def.Category.Valid() {
			problems = append(problems, fmt.Sprintf("badge %q: unknown category %q", def.Key, def.Category))
		}
		if !def.Rarity.Valid() {
			problems = append(problems, fmt.Sprintf("badge %q: unknown rarity %d", def.Key, int(def.Rarity)))
		}
		if def.Threshold != nil && *def.Threshold < 1 {
			problems = append(problems, fmt.Sprintf("badge %q: threshold must be positive, got %d", def.Key, *def.Threshold))
		}
		if def.Threshold != nil && def.Category.Valid() {
			var probe models.UserActivitySnapshot
			if _, countable := probe.CountFor(def.Category); !countable {
				problems = append(problems, fmt.Sprintf("badge %q: category %q does not support thresholds", def.Key, def.Category))
			}
		}
		if def.Key != "" {
			if seen[def.Key] {
				problems = append(problems, fmt.Sprintf("duplicate badge key %q", def.Key))
			}
			seen[def.Key] = true
		}
	}

	if len(problems) > 0 {
		return nil, &CatalogError{Source: source, Problems: problems}
	}

	ordered := make([]models.BadgeDefinition, len(defs))
	copy(ordered, defs)
	sortCanonical(ordered)

	catalog := &Catalog{
		ordered:    ordered,
		byKey:      make(map[string]*models.BadgeDefinition, len(ordered)),
		byCategory: make(map[models.BadgeCategory][]models.BadgeDefinition),
	}
	for i := range ordered {
		def := &ordered[i]
		catalog.byKey[def.Key] = def
		catalog.byCategory[def.Category] = append(catalog.byCategory[def.Category], *def)
		if def.HasThreshold() {
			catalog.thresholded = append(catalog.thresholded, *def)
		}
	}

	return catalog, nil
}

// sortCanonical orders definitions category asc, rarity asc (legendary
// first), then threshold asc. Thresholdless entries sort after
// thresholded ones within the same category and rarity; key breaks the
// final tie so the order is total.
func sortCanonical(defs []models.BadgeDefinition) {
	slices.SortFunc(defs, func(a, b models.BadgeDefinition) int {
		if a.Category != b.Category {
			if a.Category < b.Category {
				return -1
			}
			return 1
		}
		if a.Rarity != b.Rarity {
			return int(a.Rarity) - int(b.Rarity)
		}
		at, bt := thresholdSortValue(&a), thresholdSortValue(&b)
		if at != bt {
			return at - bt
		}
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
}

func thresholdSortValue(d *models.BadgeDefinition) int {
	if d.Threshold == nil {
		return int(^uint32(0) >> 1) // sort last
	}
	return *d.Threshold
}

// ===============================
// ACCESSORS
// ===============================

// All returns every definition in canonical order. The returned slice
// is a copy; callers may not mutate catalog state.
func (c *Catalog) All() []models.BadgeDefinition {
	out := make([]models.BadgeDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByKey returns the definition for key, or nil if absent.
func (c *Catalog) ByKey(key string) *models.BadgeDefinition {
	return c.byKey[key]
}

// ByCategory returns the definitions of a category in canonical order.
func (c *Catalog) ByCategory(category models.BadgeCategory) []models.BadgeDefinition {
	defs := c.byCategory[category]
	out := make([]models.BadgeDefinition, len(defs))
	copy(out, defs)
	return out
}

// Thresholded returns the definitions that participate in automatic
// threshold evaluation, in canonical order.
func (c *Catalog) Thresholded() []models.BadgeDefinition {
	out := make([]models.BadgeDefinition, len(c.thresholded))
	copy(out, c.thresholded)
	return out
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

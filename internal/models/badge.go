// file: internal/models/badge.go
package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ===============================
// RARITY
// ===============================

// Rarity is the ordered prestige tier of a badge. Lower values sort
// first: LEGENDARY is the rarest and highest tier.
type Rarity int

const (
	RarityLegendary Rarity = iota
	RarityGold
	RaritySilver
	RarityBronze
)

var rarityNames = map[Rarity]string{
	RarityLegendary: "legendary",
	RarityGold:      "gold",
	RaritySilver:    "silver",
	RarityBronze:    "bronze",
}

var rarityValues = map[string]Rarity{
	"legendary": RarityLegendary,
	"gold":      RarityGold,
	"silver":    RaritySilver,
	"bronze":    RarityBronze,
}

// String returns the lowercase rarity name.
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", int(r))
}

// Valid reports whether the rarity is a known tier.
func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

// MarshalJSON encodes the rarity as its name.
func (r Rarity) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown rarity %d", int(r))
	}
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a rarity name.
func (r *Rarity) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("rarity must be a string, got %s", string(data))
	}
	return r.set(string(data[1 : len(data)-1]))
}

// UnmarshalYAML decodes a rarity name from the catalog file.
func (r *Rarity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return r.set(name)
}

func (r *Rarity) set(name string) error {
	v, ok := rarityValues[name]
	if !ok {
		return fmt.Errorf("unknown rarity %q", name)
	}
	*r = v
	return nil
}

// ===============================
// CATEGORY
// ===============================

// BadgeCategory tags what kind of activity a badge rewards.
type BadgeCategory string

const (
	CategoryCreator     BadgeCategory = "creator"     // prophecies submitted
	CategoryAccuracy    BadgeCategory = "accuracy"    // fulfilled-prediction ratio
	CategoryRater       BadgeCategory = "rater"       // ratings given
	CategoryRounds      BadgeCategory = "rounds"      // rounds participated in
	CategorySocial      BadgeCategory = "social"      // qualitative, no threshold
	CategoryHidden      BadgeCategory = "hidden"      // qualitative, no threshold
	CategoryTime        BadgeCategory = "time"        // qualitative, no threshold
	CategoryLeaderboard BadgeCategory = "leaderboard" // qualitative, no threshold
)

// KnownCategories lists every valid category tag.
var KnownCategories = []BadgeCategory{
	CategoryCreator, CategoryAccuracy, CategoryRater, CategoryRounds,
	CategorySocial, CategoryHidden, CategoryTime, CategoryLeaderboard,
}

// Valid reports whether the category is a known tag.
func (c BadgeCategory) Valid() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ===============================
// BADGE DEFINITION
// ===============================

// BadgeDefinition is a static, immutable catalog entry. Keys are
// unique across the whole catalog; definitions are loaded once at
// process start and never mutated.
type BadgeDefinition struct {
	Key         string        `json:"key" yaml:"key" validate:"required"`
	Name        string        `json:"name" yaml:"name" validate:"required"`
	Description string        `json:"description" yaml:"description" validate:"required"`
	Requirement string        `json:"requirement" yaml:"requirement" validate:"required"`
	Category    BadgeCategory `json:"category" yaml:"category" validate:"required"`
	Rarity      Rarity        `json:"rarity" yaml:"rarity"`
	Threshold   *int          `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// HasThreshold reports whether the badge participates in automatic
// threshold evaluation. Badges without one are awarded by explicit
// qualitative triggers.
func (d *BadgeDefinition) HasThreshold() bool {
	return d.Threshold != nil
}

// ===============================
// AWARDED BADGE
// ===============================

// AwardedBadge is the permanent join between a user and a badge. At
// most one row exists per (user, badge); rows are never deleted.
type AwardedBadge struct {
	UserID   int64     `json:"user_id" db:"user_id"`
	BadgeKey string    `json:"badge_key" db:"badge_key"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`

	// Joined catalog fields for display
	Badge *BadgeDefinition `json:"badge,omitempty" db:"-"`
}

// BadgeProgress reports how far a user is from the next tier of a
// thresholded category.
type BadgeProgress struct {
	Category  BadgeCategory    `json:"category"`
	Current   int              `json:"current"`
	NextBadge *BadgeDefinition `json:"next_badge,omitempty"`
	Remaining int              `json:"remaining"`
}

// ===============================
// ACTIVITY SNAPSHOT
// ===============================

// UserActivitySnapshot holds the per-user counts every thresholded
// badge category compares against. It is derived on demand from
// persisted records and never stored.
type UserActivitySnapshot struct {
	UserID              int64 `json:"user_id" db:"user_id"`
	PropheciesCreated   int   `json:"prophecies_created" db:"prophecies_created"`
	RatingsGiven        int   `json:"ratings_given" db:"ratings_given"`
	RoundsParticipated  int   `json:"rounds_participated" db:"rounds_participated"`
	ResolvedProphecies  int   `json:"resolved_prophecies" db:"resolved_prophecies"`
	FulfilledProphecies int   `json:"fulfilled_prophecies" db:"fulfilled_prophecies"`

	// AccuracyPercent is the fulfilled/resolved ratio as a whole
	// percentage. It stays 0 until the user has enough resolved
	// prophecies for the ratio to mean anything (see AccuracyMinSample).
	AccuracyPercent int `json:"accuracy_percent" db:"accuracy_percent"`
}

// AccuracyMinSample is the minimum number of resolved prophecies a
// user needs before accuracy badges are considered. A 1-for-1 user
// should not take the top accuracy tier.
const AccuracyMinSample = 5

// CountFor returns the snapshot count compared against thresholds of
// the given category. The second return is false for qualitative
// categories that never carry thresholds.
func (s *UserActivitySnapshot) CountFor(category BadgeCategory) (int, bool) {
	switch category {
	case CategoryCreator:
		return s.PropheciesCreated, true
	case CategoryAccuracy:
		return s.AccuracyPercent, true
	case CategoryRater:
		return s.RatingsGiven, true
	case CategoryRounds:
		return s.RoundsParticipated, true
	default:
		return 0, false
	}
}

// file: internal/badges/evaluator.go
package badges

import "prophezeiung/internal/models"

// Evaluate compares a user's activity snapshot against the catalog and
// returns every thresholded definition the user newly qualifies for:
// count >= threshold and not already held. When a user jumps several
// tiers at once, all unearned tiers are returned, not just the highest.
//
// Evaluation is a pure function of (snapshot, held, catalog): it holds
// no state, touches no storage, and for fixed inputs always returns
// the same set in canonical catalog order.
func Evaluate(catalog *Catalog, snapshot *models.UserActivitySnapshot, held map[string]struct{}) []models.BadgeDefinition {
	var qualified []models.BadgeDefinition

	for _, def := range catalog.thresholded {
		if _, already := held[def.Key]; already {
			continue
		}
		count, ok := snapshot.CountFor(def.Category)
		if !ok {
			// catalog validation keeps thresholds off qualitative categories
			continue
		}
		if count >= *def.Threshold {
			qualified = append(qualified, def)
		}
	}

	return qualified
}

package services

import "questchain/models"

// BadgesEarned returns every badge of the catalog unlocked at totalXP that is not already held.
// The result keeps catalog order and never repeats an id.
func BadgesEarned(totalXP int64, all []models.Badge, held []models.Badge) []models.Badge {
	seen := make(map[string]struct{}, len(held))
	for _, b := range held {
		seen[b.ID] = struct{}{}
	}

	var earned []models.Badge
	for _, b := range all {
		if b.RequiredXP > totalXP {
			continue
		}
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		earned = append(earned, b)
	}
	return earned
}

// NextBadge is the cheapest badge still locked at totalXP.
func NextBadge(totalXP int64, all []models.Badge) (models.Badge, bool) {
	var (
		next  models.Badge
		found bool
	)
	for _, b := range all {
		if b.RequiredXP <= totalXP {
			continue
		}
		if !found || b.RequiredXP < next.RequiredXP {
			next, found = b, true
		}
	}
	return next, found
}

package pipeline

import "github.com/ysadouski/rwsched/models"

// Apply runs the type, selling, and price-bracket filters over the
// records. Filters are independent pure predicates combined with
// logical AND, so evaluation order does not affect the result. With
// no active criteria the input is returned unchanged.
func Apply(records []models.TrainRecord, criteria models.FilterCriteria) []models.TrainRecord {
	if criteria.TrainTypes == nil && criteria.Selling == nil && criteria.Bracket == nil {
		return records
	}

	kept := make([]models.TrainRecord, 0, len(records))
	for _, r := range records {
		if !criteria.MatchesType(r) {
			continue
		}
		if !criteria.MatchesSelling(r) {
			continue
		}
		if !criteria.MatchesBracket(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

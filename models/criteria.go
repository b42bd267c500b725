package models

// FilterCriteria is the resolved filter set applied to extracted
// records. A nil TrainTypes means no type filter; a non-nil empty set
// matches nothing. Selling compares as exact string, never as bool.
type FilterCriteria struct {
	TrainTypes map[string]struct{}
	Selling    *string
	Bracket    *PriceBracket
}

// TypeSet builds a membership set from a list of train types.
func TypeSet(types []string) map[string]struct{} {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// MatchesType reports whether the record passes the type filter.
func (c FilterCriteria) MatchesType(r TrainRecord) bool {
	if c.TrainTypes == nil {
		return true
	}
	if r.TrainType == nil {
		return false
	}
	_, ok := c.TrainTypes[*r.TrainType]
	return ok
}

// MatchesSelling reports whether the record passes the selling filter.
func (c FilterCriteria) MatchesSelling(r TrainRecord) bool {
	return c.Selling == nil || *c.Selling == r.SellingAllowed
}

// MatchesBracket reports whether at least one ticket on the record has
// a parsed minimum price inside the bracket. Records where every
// ticket's price is unknown never pass an explicit bracket filter.
func (c FilterCriteria) MatchesBracket(r TrainRecord) bool {
	if c.Bracket == nil {
		return true
	}
	for _, t := range r.Tickets {
		if t.MinPrice != nil && c.Bracket.Contains(*t.MinPrice) {
			return true
		}
	}
	return false
}

package models

import "fmt"

// PriceBracket is a coarse price range used for filtering. Boundaries
// are currency-unit-agnostic; mixed currencies are not reconciled.
type PriceBracket int

const (
	BracketCheap PriceBracket = iota
	BracketNormal
	BracketExpensive
)

// ParsePriceBracket maps a flag/preset value to a bracket.
func ParsePriceBracket(s string) (PriceBracket, error) {
	switch s {
	case "cheap":
		return BracketCheap, nil
	case "normal":
		return BracketNormal, nil
	case "expensive":
		return BracketExpensive, nil
	default:
		return 0, fmt.Errorf("unknown price bracket %q (want cheap, normal, or expensive)", s)
	}
}

func (b PriceBracket) String() string {
	switch b {
	case BracketCheap:
		return "cheap"
	case BracketNormal:
		return "normal"
	case BracketExpensive:
		return "expensive"
	default:
		return fmt.Sprintf("PriceBracket(%d)", int(b))
	}
}

// Contains reports whether a price falls in the bracket. The normal
// bracket is inclusive at both ends.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case BracketCheap:
		return price < 10
	case BracketNormal:
		return price >= 10 && price <= 20
	case BracketExpensive:
		return price > 20
	default:
		return false
	}
}

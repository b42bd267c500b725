// Package parser holds pure text-normalization helpers for the
// extraction pipeline.
package parser

import (
	"strconv"
	"strings"
)

// NormalizePrice parses raw price text into a numeric value. The page
// uses a decimal comma, so it is swapped for a point before parsing.
// Malformed or placeholder text (dashes, empty strings) is an expected
// condition and yields nil, never an error: zero is a valid price and
// must stay distinguishable from "unknown".
func NormalizePrice(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// MinPrice returns the lowest price among raw tokens that normalize,
// or nil when none do.
func MinPrice(tokens []string) *float64 {
	var min *float64
	for _, tok := range tokens {
		v := NormalizePrice(tok)
		if v == nil {
			continue
		}
		if min == nil || *v < *min {
			min = v
		}
	}
	return min
}

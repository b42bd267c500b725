package parser

import (
	"errors"
	"testing"

	"github.com/ysadouski/rwsched/models"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{name: "decimal comma", input: "15,50", expected: ptr(15.5)},
		{name: "decimal point", input: "12.00", expected: ptr(12.0)},
		{name: "integer", input: "7", expected: ptr(7.0)},
		{name: "zero is a valid price", input: "0", expected: ptr(0.0)},
		{name: "surrounding whitespace", input: " 9,99 ", expected: ptr(9.99)},
		{name: "placeholder dash", input: "—", expected: nil},
		{name: "empty string", input: "", expected: nil},
		{name: "text", input: "от 12", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrice(tt.input)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("NormalizePrice(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			if got != nil && *got != *tt.expected {
				t.Fatalf("NormalizePrice(%q) = %v, want %v", tt.input, *got, *tt.expected)
			}
		})
	}
}

func TestMinPrice(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected *float64
	}{
		{name: "picks lowest", tokens: []string{"12,00", "8,40", "30"}, expected: ptr(8.4)},
		{name: "skips unparseable", tokens: []string{"—", "20,50"}, expected: ptr(20.5)},
		{name: "all unparseable", tokens: []string{"—", ""}, expected: nil},
		{name: "no tokens", tokens: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinPrice(tt.tokens)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("MinPrice(%v) = %v, want %v", tt.tokens, got, tt.expected)
			}
			if got != nil && *got != *tt.expected {
				t.Fatalf("MinPrice(%v) = %v, want %v", tt.tokens, *got, *tt.expected)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected models.TimeSegment
	}{
		{input: "00:00", expected: models.SegmentNight},
		{input: "05:59", expected: models.SegmentNight},
		{input: "06:00", expected: models.SegmentMorning},
		{input: "11:59", expected: models.SegmentMorning},
		{input: "12:00", expected: models.SegmentDay},
		{input: "17:59", expected: models.SegmentDay},
		{input: "18:00", expected: models.SegmentEvening},
		{input: "23:59", expected: models.SegmentEvening},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Segment(tt.input)
			if err != nil {
				t.Fatalf("Segment(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Fatalf("Segment(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSegmentInvalidInput(t *testing.T) {
	for _, input := range []string{"", "7:5:9", "25:00", "12.30", "noon"} {
		t.Run(input, func(t *testing.T) {
			_, err := Segment(input)
			if err == nil {
				t.Fatalf("Segment(%q) expected error", input)
			}
			var timeErr InvalidTimeError
			if !errors.As(err, &timeErr) {
				t.Fatalf("Segment(%q) error = %T, want InvalidTimeError", input, err)
			}
			if timeErr.Value != input {
				t.Fatalf("error value = %q, want %q", timeErr.Value, input)
			}
		})
	}
}

func TestValidateClock(t *testing.T) {
	if err := ValidateClock("07:10"); err != nil {
		t.Fatalf("ValidateClock(07:10) error: %v", err)
	}
	if err := ValidateClock("24:00"); err == nil {
		t.Fatalf("ValidateClock(24:00) expected error")
	}
}

func ptr(v float64) *float64 {
	return &v
}

package pipeline

import (
	"testing"

	"github.com/ysadouski/rwsched/models"
)

func record(number, trainType, selling string, minPrices ...*float64) models.TrainRecord {
	r := models.TrainRecord{
		Number:         number,
		SellingAllowed: selling,
		DepartureTime:  "10:00",
	}
	if trainType != "" {
		r.TrainType = &trainType
	}
	for _, p := range minPrices {
		r.Tickets = append(r.Tickets, models.TicketOffer{MinPrice: p})
	}
	return r
}

func ptr(v float64) *float64 {
	return &v
}

func TestApplyIdentity(t *testing.T) {
	records := []models.TrainRecord{
		record("1", "international", "true", ptr(12)),
		record("2", "", "false"),
	}

	got := Apply(records, models.FilterCriteria{})
	if len(got) != len(records) {
		t.Fatalf("identity apply changed length: %d != %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Number != records[i].Number {
			t.Fatalf("identity apply reordered records")
		}
	}
}

func TestApplyFilters(t *testing.T) {
	sellingTrue := "true"
	normal := models.BracketNormal
	expensive := models.BracketExpensive

	records := []models.TrainRecord{
		record("1", "international", "true", ptr(12)),
		record("2", "regional_economy", "true", ptr(8), ptr(25)),
		record("3", "international", "false", ptr(30)),
		record("4", "", "true", nil),
	}

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		numbers  []string
	}{
		{
			name:     "type only",
			criteria: models.FilterCriteria{TrainTypes: models.TypeSet([]string{"international"})},
			numbers:  []string{"1", "3"},
		},
		{
			name:     "selling only",
			criteria: models.FilterCriteria{Selling: &sellingTrue},
			numbers:  []string{"1", "2", "4"},
		},
		{
			name:     "normal bracket",
			criteria: models.FilterCriteria{Bracket: &normal},
			numbers:  []string{"1"},
		},
		{
			name:     "expensive bracket needs one qualifying ticket",
			criteria: models.FilterCriteria{Bracket: &expensive},
			numbers:  []string{"2", "3"},
		},
		{
			name: "all filters AND together",
			criteria: models.FilterCriteria{
				TrainTypes: models.TypeSet([]string{"international"}),
				Selling:    &sellingTrue,
				Bracket:    &normal,
			},
			numbers: []string{"1"},
		},
		{
			name:     "empty type set removes everything",
			criteria: models.FilterCriteria{TrainTypes: models.TypeSet(nil)},
			numbers:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.criteria)
			if len(got) != len(tt.numbers) {
				t.Fatalf("kept %d records, want %d", len(got), len(tt.numbers))
			}
			for i, want := range tt.numbers {
				if got[i].Number != want {
					t.Errorf("got[%d].Number = %q, want %q", i, got[i].Number, want)
				}
			}
		})
	}
}

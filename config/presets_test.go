package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/ysadouski/rwsched/models"
)

func strPtr(s string) *string {
	return &s
}

func TestResolveAdoptsPresetForUnsetFields(t *testing.T) {
	presets := map[string]Preset{
		"commute": {
			Origin:      "minsk",
			Destination: "brest",
			TrainTypes:  []string{"interregional_economy"},
			Selling:     "true",
		},
	}

	flags := Criteria{Date: strPtr("2026-09-05")}
	got, err := Resolve(flags, "commute", presets)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got.Date == nil || *got.Date != "2026-09-05" {
		t.Errorf("caller-provided date must win, got %v", got.Date)
	}
	if got.Origin == nil || *got.Origin != "minsk" {
		t.Errorf("origin not adopted from preset: %v", got.Origin)
	}
	if got.TrainTypes == nil || len(*got.TrainTypes) != 1 || (*got.TrainTypes)[0] != "interregional_economy" {
		t.Errorf("train types not adopted from preset: %v", got.TrainTypes)
	}
	if got.Selling == nil || *got.Selling != "true" {
		t.Errorf("selling not adopted from preset: %v", got.Selling)
	}
	if got.Bracket != nil {
		t.Errorf("bracket absent from preset must stay unset, got %v", *got.Bracket)
	}
}

func TestResolveCallerFieldWinsOverPreset(t *testing.T) {
	presets := map[string]Preset{
		"commute": {Origin: "minsk", Destination: "brest", Date: "2026-01-01", Selling: "true"},
	}

	flags := Criteria{
		Origin:      strPtr("gomel"),
		Date:        strPtr("2026-09-05"),
		Selling:     strPtr("false"),
		Destination: strPtr("brest"),
	}
	got, err := Resolve(flags, "commute", presets)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if *got.Origin != "gomel" || *got.Date != "2026-09-05" || *got.Selling != "false" {
		t.Fatalf("caller values overridden: %+v", got)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(Criteria{}, "nope", map[string]Preset{})
	var notFound PresetNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want PresetNotFoundError", err)
	}
	if notFound.Name != "nope" {
		t.Fatalf("name = %q", notFound.Name)
	}
}

func TestResolveMissingRequiredFields(t *testing.T) {
	_, err := Resolve(Criteria{Origin: strPtr("minsk")}, "", nil)
	var missing MissingCriteriaError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingCriteriaError", err)
	}
	for _, field := range []string{"destination", "date"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should name %q: %v", field, err)
		}
	}
	if strings.Contains(err.Error(), "origin") {
		t.Errorf("origin was set and must not be reported: %v", err)
	}
}

func TestResolveNoPresetNameSkipsLookup(t *testing.T) {
	flags := Criteria{
		Origin:      strPtr("minsk"),
		Destination: strPtr("brest"),
		Date:        strPtr("2026-09-05"),
	}
	got, err := Resolve(flags, "", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.TrainTypes != nil || got.Selling != nil || got.Bracket != nil {
		t.Fatalf("unset filters must stay unset: %+v", got)
	}
}

func TestLoadPresetsFromViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(`
presets:
  commute:
    origin: minsk
    destination: brest
    train_types:
      - interregional_economy
    bracket: normal
`)); err != nil {
		t.Fatalf("read config: %v", err)
	}

	presets, err := LoadPresets(v)
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	commute, ok := presets["commute"]
	if !ok {
		t.Fatalf("commute preset missing: %v", presets)
	}
	if commute.Origin != "minsk" || commute.Bracket != "normal" {
		t.Fatalf("preset = %+v", commute)
	}
	if len(commute.TrainTypes) != 1 || commute.TrainTypes[0] != "interregional_economy" {
		t.Fatalf("train types = %v", commute.TrainTypes)
	}
}

func TestFilterCriteriaConversion(t *testing.T) {
	types := []string{"international"}
	c := Criteria{
		TrainTypes: &types,
		Selling:    strPtr("false"),
		Bracket:    strPtr("normal"),
	}

	fc, err := c.FilterCriteria()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, ok := fc.TrainTypes["international"]; !ok {
		t.Errorf("type set missing member")
	}
	if fc.Selling == nil || *fc.Selling != "false" {
		t.Errorf("selling = %v", fc.Selling)
	}
	if fc.Bracket == nil || *fc.Bracket != models.BracketNormal {
		t.Errorf("bracket = %v", fc.Bracket)
	}
}

func TestFilterCriteriaRejectsBadValues(t *testing.T) {
	if _, err := (Criteria{Selling: strPtr("maybe")}).FilterCriteria(); err == nil {
		t.Fatalf("expected error for bad selling value")
	}
	if _, err := (Criteria{Bracket: strPtr("luxury")}).FilterCriteria(); err == nil {
		t.Fatalf("expected error for bad bracket value")
	}
}

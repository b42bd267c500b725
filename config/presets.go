package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ysadouski/rwsched/models"
)

// Preset is a named, reusable bundle of criteria loaded from the
// config file. Empty fields are treated as not present.
type Preset struct {
	Origin      string   `mapstructure:"origin"`
	Destination string   `mapstructure:"destination"`
	Date        string   `mapstructure:"date"`
	TrainTypes  []string `mapstructure:"train_types"`
	Selling     string   `mapstructure:"selling"`
	Bracket     string   `mapstructure:"bracket"`
}

// Criteria carries per-run criteria with an explicit unset state per
// field. A nil pointer means the caller never provided the field,
// which is distinct from providing an empty value.
type Criteria struct {
	Origin      *string
	Destination *string
	Date        *string
	TrainTypes  *[]string
	Selling     *string
	Bracket     *string
}

// PresetNotFoundError reports a preset name absent from configuration.
type PresetNotFoundError struct {
	Name string
}

func (e PresetNotFoundError) Error() string {
	return fmt.Sprintf("preset %q not found in configuration", e.Name)
}

// MissingCriteriaError reports required fields still unset after the
// preset merge.
type MissingCriteriaError struct {
	Fields []string
}

func (e MissingCriteriaError) Error() string {
	return fmt.Sprintf("missing required criteria: %s", strings.Join(e.Fields, ", "))
}

// LoadPresets reads the preset table from the viper configuration.
func LoadPresets(v *viper.Viper) (map[string]Preset, error) {
	presets := make(map[string]Preset)
	if err := v.UnmarshalKey("presets", &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return presets, nil
}

// Resolve merges a named preset into caller-provided criteria. The
// merge is per-field: a field the caller set wins; a field the caller
// left unset adopts the preset's value when the preset has one. After
// the merge, origin, destination, and date must all be set.
func Resolve(flags Criteria, presetName string, presets map[string]Preset) (Criteria, error) {
	merged := flags

	if presetName != "" {
		preset, ok := presets[presetName]
		if !ok {
			return Criteria{}, PresetNotFoundError{Name: presetName}
		}
		if merged.Origin == nil && preset.Origin != "" {
			merged.Origin = &preset.Origin
		}
		if merged.Destination == nil && preset.Destination != "" {
			merged.Destination = &preset.Destination
		}
		if merged.Date == nil && preset.Date != "" {
			merged.Date = &preset.Date
		}
		if merged.TrainTypes == nil && preset.TrainTypes != nil {
			types := preset.TrainTypes
			merged.TrainTypes = &types
		}
		if merged.Selling == nil && preset.Selling != "" {
			merged.Selling = &preset.Selling
		}
		if merged.Bracket == nil && preset.Bracket != "" {
			merged.Bracket = &preset.Bracket
		}
	}

	var missing []string
	if merged.Origin == nil {
		missing = append(missing, "origin")
	}
	if merged.Destination == nil {
		missing = append(missing, "destination")
	}
	if merged.Date == nil {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return Criteria{}, MissingCriteriaError{Fields: missing}
	}

	return merged, nil
}

// FilterCriteria converts the resolved criteria into the filter set
// the pipeline applies.
func (c Criteria) FilterCriteria() (models.FilterCriteria, error) {
	out := models.FilterCriteria{}
	if c.TrainTypes != nil {
		out.TrainTypes = models.TypeSet(*c.TrainTypes)
	}
	if c.Selling != nil {
		if *c.Selling != "true" && *c.Selling != "false" {
			return models.FilterCriteria{}, fmt.Errorf("selling filter must be %q or %q, got %q", "true", "false", *c.Selling)
		}
		out.Selling = c.Selling
	}
	if c.Bracket != nil {
		bracket, err := models.ParsePriceBracket(*c.Bracket)
		if err != nil {
			return models.FilterCriteria{}, err
		}
		out.Bracket = &bracket
	}
	return out, nil
}

package parser

import (
	"fmt"
	"time"

	"github.com/ysadouski/rwsched/models"
)

const clockLayout = "15:04"

// InvalidTimeError reports a departure time that is not strict HH:MM.
type InvalidTimeError struct {
	Value string
	Err   error
}

func (e InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM", e.Value)
}

func (e InvalidTimeError) Unwrap() error {
	return e.Err
}

// ValidateClock checks that a value parses as 24-hour HH:MM.
func ValidateClock(value string) error {
	if _, err := time.Parse(clockLayout, value); err != nil {
		return InvalidTimeError{Value: value, Err: err}
	}
	return nil
}

// Segment buckets a departure time into its day segment:
// Night [0,6), Morning [6,12), Day [12,18), Evening [18,24).
func Segment(departure string) (models.TimeSegment, error) {
	t, err := time.Parse(clockLayout, departure)
	if err != nil {
		return 0, InvalidTimeError{Value: departure, Err: err}
	}
	switch h := t.Hour(); {
	case h < 6:
		return models.SegmentNight, nil
	case h < 12:
		return models.SegmentMorning, nil
	case h < 18:
		return models.SegmentDay, nil
	default:
		return models.SegmentEvening, nil
	}
}

package models

import "fmt"

// TimeSegment is one of four fixed day partitions used to group
// trains by departure time.
type TimeSegment int

const (
	SegmentNight TimeSegment = iota // [00:00, 06:00)
	SegmentMorning
	SegmentDay
	SegmentEvening
)

// Segments lists the segments in display order.
func Segments() []TimeSegment {
	return []TimeSegment{SegmentNight, SegmentMorning, SegmentDay, SegmentEvening}
}

func (s TimeSegment) String() string {
	switch s {
	case SegmentNight:
		return "Night"
	case SegmentMorning:
		return "Morning"
	case SegmentDay:
		return "Day"
	case SegmentEvening:
		return "Evening"
	default:
		return fmt.Sprintf("TimeSegment(%d)", int(s))
	}
}

// Label returns the section header as shown in the report.
func (s TimeSegment) Label() string {
	switch s {
	case SegmentNight:
		return "Ночь"
	case SegmentMorning:
		return "Утро"
	case SegmentDay:
		return "День"
	case SegmentEvening:
		return "Вечер"
	default:
		return "?"
	}
}

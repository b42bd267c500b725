package render

import (
	"fmt"

	"github.com/ysadouski/rwsched/models"
	"github.com/ysadouski/rwsched/parser"
)

// notSellableMarker flags rows where ticket selling is closed.
const notSellableMarker = "❌"

var icons = map[string]string{
	"international":          "🌍",
	"regional_business":      "💼",
	"interregional_economy":  "🚆",
	"interregional_business": "🚄",
	"regional_economy":       "🚌",
}

const fallbackIcon = "❓"

// Icon maps a train type to its display glyph. Unclassified and
// unknown types share the fallback glyph.
func Icon(trainType *string) string {
	if trainType == nil {
		return fallbackIcon
	}
	if icon, ok := icons[*trainType]; ok {
		return icon
	}
	return fallbackIcon
}

// Report renders records grouped by departure-time segment, in fixed
// segment order. Segments with no members are omitted entirely.
// Within a segment the input ordering is preserved.
func Report(records []models.TrainRecord) ([]string, error) {
	grouped := make(map[models.TimeSegment][]models.TrainRecord)
	for _, r := range records {
		seg, err := parser.Segment(r.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("train %s: %w", r.Number, err)
		}
		grouped[seg] = append(grouped[seg], r)
	}

	var lines []string
	for _, seg := range models.Segments() {
		members := grouped[seg]
		if len(members) == 0 {
			continue
		}
		lines = append(lines, "", SectionStyle.Render(fmt.Sprintf("=== %s ===", seg.Label())))
		for _, r := range members {
			lines = append(lines, headerLine(r))
			for _, t := range r.Tickets {
				lines = append(lines, ticketLine(t))
			}
		}
	}
	return lines, nil
}

func headerLine(r models.TrainRecord) string {
	header := fmt.Sprintf("%s Поезд %s %s → %s", Icon(r.TrainType), r.Number, r.DepartureLabel, r.ArrivalLabel)
	if r.SellingAllowed == "false" {
		header += " " + notSellableMarker
	}
	if r.TrainType != nil {
		if _, ok := premiumTypes[*r.TrainType]; ok {
			return PremiumHeaderStyle.Render(header)
		}
	}
	return header
}

func ticketLine(t models.TicketOffer) string {
	line := fmt.Sprintf("  %s: %s мест, %s", t.ClassName, t.SeatsAvailable, t.DisplayPrice)
	if t.ClassName == seatedClassName {
		return SeatedTicketStyle.Render(line)
	}
	return line
}

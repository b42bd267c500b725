// Package extract turns the booking-result markup into typed train
// records. It walks the repeated schedule rows in document order and
// reads per-class ticket data, normalizing price tokens as it goes.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysadouski/rwsched/models"
	"github.com/ysadouski/rwsched/parser"
)

const (
	rowSelector      = ".sch-table__row"
	ticketSelector   = ".sch-table__t-item.has-quant"
	classSelector    = ".sch-table__t-name"
	seatsSelector    = "a span"
	costSelector     = ".ticket-cost"
	currencySelector = ".ticket-currency"

	attrTrainType   = "data-train-type"
	attrSelling     = "data-ticket_selling_allowed"
	attrTrainNumber = "data-train-number"
)

// Options rejects rows during extraction, before their ticket lists
// are built. Functionally equivalent to filtering afterwards; the
// result set is identical either way.
type Options struct {
	// Types is a membership filter on the row's train type. nil means
	// no filter; an empty set matches nothing.
	Types map[string]struct{}
	// Selling, when set, must equal the row's selling attribute
	// exactly ("true"/"false").
	Selling *string
}

// Trains extracts one record per qualifying schedule row, in document
// order. The first row missing a required sub-element aborts the run.
func Trains(doc *goquery.Document, opts Options) ([]models.TrainRecord, error) {
	var (
		records []models.TrainRecord
		failure error
	)

	doc.Find(rowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		var trainType *string
		if v, ok := row.Attr(attrTrainType); ok {
			trainType = &v
		}
		selling, _ := row.Attr(attrSelling)

		if opts.Types != nil {
			if trainType == nil {
				return true
			}
			if _, ok := opts.Types[*trainType]; !ok {
				return true
			}
		}
		if opts.Selling != nil && *opts.Selling != selling {
			return true
		}

		record, err := extractRow(row, trainType, selling)
		if err != nil {
			failure = err
			return false
		}
		records = append(records, record)
		return true
	})

	if failure != nil {
		return nil, failure
	}
	return records, nil
}

// TrainTypes lists the distinct train types present in the document,
// sorted, with untyped rows dropped.
func TrainTypes(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		if v, ok := row.Attr(attrTrainType); ok && v != "" {
			seen[v] = struct{}{}
		}
	})

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func extractRow(row *goquery.Selection, trainType *string, selling string) (models.TrainRecord, error) {
	number, _ := row.Attr(attrTrainNumber)

	depTime, err := requiredText(row, ".train-from-time", "departure time", number)
	if err != nil {
		return models.TrainRecord{}, err
	}
	arrTime, err := requiredText(row, ".train-to-time", "arrival time", number)
	if err != nil {
		return models.TrainRecord{}, err
	}
	depStation, err := requiredText(row, ".train-from-name", "departure station", number)
	if err != nil {
		return models.TrainRecord{}, err
	}
	arrStation, err := requiredText(row, ".train-to-name", "arrival station", number)
	if err != nil {
		return models.TrainRecord{}, err
	}

	if err := parser.ValidateClock(depTime); err != nil {
		return models.TrainRecord{}, fmt.Errorf("extract: train %s: %w", number, err)
	}

	tickets, err := extractTickets(row, number)
	if err != nil {
		return models.TrainRecord{}, err
	}

	return models.TrainRecord{
		Number:         number,
		TrainType:      trainType,
		SellingAllowed: selling,
		DepartureTime:  depTime,
		ArrivalTime:    arrTime,
		DepartureLabel: depTime + " " + depStation,
		ArrivalLabel:   arrTime + " " + arrStation,
		Tickets:        tickets,
	}, nil
}

func extractTickets(row *goquery.Selection, number string) ([]models.TicketOffer, error) {
	var (
		tickets []models.TicketOffer
		failure error
	)

	row.Find(ticketSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		nameSel := item.Find(classSelector)
		if nameSel.Length() == 0 {
			failure = RowError{TrainNumber: number, Field: "ticket class name"}
			return false
		}
		name := strings.TrimSpace(nameSel.First().Text())
		if name == "" {
			name = models.UnknownClassName
		}

		seatsSel := item.Find(seatsSelector)
		if seatsSel.Length() == 0 {
			failure = RowError{TrainNumber: number, Field: "seat count"}
			return false
		}
		seats := strings.TrimSpace(seatsSel.First().Text())

		costs := collectText(item, costSelector)
		tickets = append(tickets, models.TicketOffer{
			ClassName:      name,
			SeatsAvailable: seats,
			DisplayPrice:   displayPrice(costs, collectText(item, currencySelector)),
			MinPrice:       parser.MinPrice(costs),
		})
		return true
	})

	if failure != nil {
		return nil, failure
	}
	return tickets, nil
}

// displayPrice joins all price tokens with "/" and appends the
// deduplicated, sorted currency codes. Rows without price data show
// the placeholder instead of an empty string.
func displayPrice(costs, currencies []string) string {
	if len(costs) == 0 {
		return models.NoPricePlaceholder
	}
	price := strings.Join(costs, "/")
	if len(currencies) > 0 {
		uniq := make(map[string]struct{}, len(currencies))
		for _, c := range currencies {
			uniq[c] = struct{}{}
		}
		codes := make([]string, 0, len(uniq))
		for c := range uniq {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		price += " " + strings.Join(codes, "/")
	}
	return price
}

func collectText(sel *goquery.Selection, selector string) []string {
	var out []string
	sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func requiredText(row *goquery.Selection, selector, field, number string) (string, error) {
	sel := row.Find(selector)
	if sel.Length() == 0 {
		return "", RowError{TrainNumber: number, Field: field}
	}
	return strings.TrimSpace(sel.First().Text()), nil
}

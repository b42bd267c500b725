// Package models defines data structures for the seat checker.
package models

// UnknownClassName is shown when a ticket class carries no label.
const UnknownClassName = "Неизвестный тип"

// NoPricePlaceholder is shown when a ticket class carries no price data.
const NoPricePlaceholder = "—"

// TicketOffer is one purchasable fare class within a train row.
type TicketOffer struct {
	ClassName      string   `csv:"class" json:"class"`
	SeatsAvailable string   `csv:"seats" json:"seats"`
	DisplayPrice   string   `csv:"price" json:"price"`
	MinPrice       *float64 `csv:"min_price" json:"min_price,omitempty"`
}

// TrainRecord is one train row from the booking-result page.
// TrainType is nil when the row carries no type attribute; such rows
// are unclassified and never match an explicit type filter.
type TrainRecord struct {
	Number         string        `json:"number"`
	TrainType      *string       `json:"train_type,omitempty"`
	SellingAllowed string        `json:"selling_allowed"`
	DepartureTime  string        `json:"departure_time"`
	ArrivalTime    string        `json:"arrival_time"`
	DepartureLabel string        `json:"departure"`
	ArrivalLabel   string        `json:"arrival"`
	Tickets        []TicketOffer `json:"tickets"`
}

// FetchResult holds counters from one page fetch.
type FetchResult struct {
	RequestCount int
	RetryCount   int
	ErrorCount   int
	ErrorsByType map[string]int
	FromCache    bool
}

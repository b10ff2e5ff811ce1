// Package nfce extracts line items from Brazilian NFC-e consumer receipts,
// either from the public receipt page HTML or from freeform pasted text.
//
// Everything here is heuristic string matching with fallbacks. There is no
// grammar and no recovery beyond "give up and report": SEFAZ layouts vary by
// state and the extractors may need adjusting for layouts they have not seen.
package nfce

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Confidence says how much an extraction result should be trusted. A
// desperate fallback still produces items, but callers can tell it apart
// from a clean structured parse.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Item is one extracted receipt line.
type Item struct {
	Name  string
	Qty   decimal.Decimal
	Unit  string
	Price decimal.Decimal // unit price when derivable, else the line total
}

// Receipt is the result of one extraction attempt.
type Receipt struct {
	Store    string
	DateISO  string // empty when no date was found in the source
	Items    []Item
	RawTotal decimal.Decimal

	Strategy   string
	Confidence Confidence
}

// ErrNoItems is returned when no extractor managed to pull a single item out
// of the source. Imports are all-or-nothing, so this fails the whole attempt.
var ErrNoItems = errors.New("não foi possível identificar itens nessa NFC-e; o layout pode ser diferente e precisar de ajustes")

func sumTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(it.Qty))
	}
	return total
}

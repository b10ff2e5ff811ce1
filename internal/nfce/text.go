package nfce

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// A textStrategy is one way of reading a pasted receipt. Strategies run in
// order; the first one that yields at least one item wins, and its name and
// confidence are reported with the result.
type textStrategy struct {
	name       string
	confidence Confidence
	extract    func(text string) []Item
}

var textStrategies = []textStrategy{
	{name: "nfce-layout", confidence: ConfidenceHigh, extract: extractNFCeLayout},
	{name: "line-heuristic", confidence: ConfidenceMedium, extract: extractLineHeuristic},
	{name: "single-token", confidence: ConfidenceLow, extract: extractSingleToken},
}

// ExtractText runs the strategy chain over freeform pasted receipt text.
// Returns ErrNoItems when every strategy comes up empty.
func ExtractText(text string) (*Receipt, error) {
	for _, s := range textStrategies {
		items := s.extract(text)
		if len(items) == 0 {
			continue
		}
		return &Receipt{
			Items:      items,
			RawTotal:   sumTotal(items),
			DateISO:    DetectDateISO(text),
			Strategy:   s.name,
			Confidence: s.confidence,
		}, nil
	}
	return nil, ErrNoItems
}

// The fixed NFC-e item layout, e.g.:
//
//	Arroz 5kg Qtde total de ítens: 1.0000 UN: UN Valor total R$: R$ 25,00
var nfceLayoutRe = regexp.MustCompile(
	`(?im)^\s*(.+?)\s+Qtde\.?\s+total\s+de\s+[íi]tens?:\s*([\d.,]+)\s+UN:\s*(\S+)\s+Valor\s+total\s+R\$:\s*(?:R\$)?\s*([\d.,]+)`)

func extractNFCeLayout(text string) []Item {
	matches := nfceLayoutRe.FindAllStringSubmatch(text, -1)
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if len(name) < 2 {
			continue
		}
		qty := ParseQty(m[2])
		total := ParseBRL(m[4])
		items = append(items, Item{
			Name:  name,
			Qty:   qty,
			Unit:  strings.ToLower(m[3]),
			Price: unitPrice(total, qty),
		})
	}
	return items
}

var (
	moneyTokenRe = regexp.MustCompile(`\d+(?:\.\d{3})*,\d{2}`)
	qtyUnitRe    = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|g|l|ml|un|und|unid|pct|pc|cx|dz)\b`)
	currencyRe   = regexp.MustCompile(`(?i)R\$\s*:?`)
)

// extractLineHeuristic reads one item per line: the last monetary token on
// the line is the line total, an embedded "<qty> <unit>" token inside what
// remains is the quantity, and anything else defaults to one unit.
func extractLineHeuristic(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		if isTotalLine(line) {
			continue
		}
		tokens := moneyTokenRe.FindAllStringIndex(line, -1)
		if len(tokens) == 0 {
			continue
		}

		last := tokens[len(tokens)-1]
		total := ParseBRL(line[last[0]:last[1]])
		desc := cleanDescription(line[:last[0]] + line[last[1]:])
		if len(desc) < 2 {
			continue
		}

		qty := decimal.NewFromInt(1)
		unit := "un"
		if m := qtyUnitRe.FindStringSubmatch(desc); m != nil {
			qty = ParseQty(m[1])
			unit = strings.ToLower(m[2])
		}

		items = append(items, Item{Name: desc, Qty: qty, Unit: unit, Price: unitPrice(total, qty)})
	}
	return items
}

// extractSingleToken is the last resort: any non-total line carrying exactly
// one monetary token becomes a qty=1 item priced at that token.
func extractSingleToken(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		if isTotalLine(line) {
			continue
		}
		tokens := moneyTokenRe.FindAllStringIndex(line, -1)
		if len(tokens) != 1 {
			continue
		}
		desc := cleanDescription(line[:tokens[0][0]] + line[tokens[0][1]:])
		if len(desc) < 2 {
			continue
		}
		items = append(items, Item{
			Name:  desc,
			Qty:   decimal.NewFromInt(1),
			Unit:  "un",
			Price: ParseBRL(line[tokens[0][0]:tokens[0][1]]),
		})
	}
	return items
}

func isTotalLine(line string) bool {
	return strings.Contains(strings.ToLower(line), "total")
}

func cleanDescription(s string) string {
	s = currencyRe.ReplaceAllString(s, " ")
	return strings.Trim(strings.Join(strings.Fields(s), " "), " -:;")
}

// unitPrice derives a per-unit price from a line total. When the quantity is
// unusable the total itself stands in as the price.
func unitPrice(total, qty decimal.Decimal) decimal.Decimal {
	if qty.Sign() > 0 && total.Sign() > 0 {
		return total.DivRound(qty, 4)
	}
	return total
}

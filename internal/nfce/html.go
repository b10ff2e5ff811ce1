package nfce

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Selectors where SEFAZ receipt pages usually put the store name.
const storeSelectors = "h1, h2, .txtTopo, .nomeEmpresa, .txtNome"

// DefaultStore is used when no store name can be found in the page.
const DefaultStore = "Loja"

var hasDigitRe = regexp.MustCompile(`\d`)

// ExtractHTML scans a fetched NFC-e page for an item table. Every table row
// with at least three cells is a candidate: first cell is the description,
// the last non-empty of the two trailing cells is the line total, and the
// first digit-bearing cell supplies the quantity. Column layouts differ per
// state, so this is best effort.
func ExtractHTML(html string) (*Receipt, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("ler HTML da NFC-e: %w", err)
	}

	store := strings.TrimSpace(doc.Find(storeSelectors).First().Text())
	if store == "" {
		store = DefaultStore
	}

	var items []Item
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 3 {
			return
		}
		cols := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(td.Text()))
		})

		desc := cols[0]
		if len(desc) < 2 {
			return
		}

		qty := decimal.NewFromInt(1)
		for _, c := range cols {
			if hasDigitRe.MatchString(c) {
				qty = ParseQty(strings.ReplaceAll(strings.ReplaceAll(c, ".", ""), ",", "."))
				break
			}
		}

		totalStr := cols[len(cols)-1]
		if totalStr == "" && len(cols) >= 2 {
			totalStr = cols[len(cols)-2]
		}
		total := ParseBRL(totalStr)

		items = append(items, Item{
			Name: desc,
			Qty:  qty,
			// Unit columns are not reliably placed across layouts.
			Unit:  "un",
			Price: unitPrice(total, qty),
		})
	})

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return &Receipt{
		Store:      store,
		DateISO:    DetectDateISO(doc.Find("body").Text()),
		Items:      items,
		RawTotal:   sumTotal(items),
		Strategy:   "html-table",
		Confidence: ConfidenceMedium,
	}, nil
}

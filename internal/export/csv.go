// Package export renders reports into files the user takes elsewhere:
// a spreadsheet-friendly CSV and a daily-spending chart (SVG and PNG).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/reports"
)

// utf8BOM makes Excel open the file as UTF-8 instead of the locale codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders the report plus its underlying purchases as a
// semicolon-delimited, comma-decimal CSV with two sections: the category
// summary, then the line-item detail. Only purchases inside the report's
// range are listed.
func CSV(r reports.Report, purchases []domain.Purchase) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)

	w := csv.NewWriter(buf)
	w.Comma = ';'

	records := [][]string{
		{"Categoria", "Total", "%"},
	}
	for _, row := range r.ByCategory {
		records = append(records, []string{row.Label, brl(row.Amount), brl(row.Pct)})
	}
	records = append(records,
		[]string{"Total geral", brl(r.Total), ""},
		[]string{},
		[]string{"Data", "Loja", "Item", "Qtde", "Unidade", "Preço", "Total"},
	)
	for _, p := range purchases {
		if p.DateISO < r.FromISO || p.DateISO > r.ToISO {
			continue
		}
		for _, it := range p.Items {
			store := it.Store
			if store == "" {
				store = p.Store
			}
			records = append(records, []string{
				p.DateISO, store, it.Name,
				qty(it.Qty), it.Unit,
				brl(it.Price), brl(it.LineTotal()),
			})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// brl formats an amount with two places and a decimal comma.
func brl(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// qty formats a quantity with a decimal comma, trimming trailing zeros so
// "2" stays "2" and "2.5" becomes "2,5".
func qty(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

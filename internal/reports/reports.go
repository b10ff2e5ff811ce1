// Package reports aggregates the purchase history into spending reports:
// grand total, category and store breakdowns, a zero-filled daily series,
// a month-over-month comparison and an all-time per-month totals view.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/catalog"
	"github.com/ygglist/ygglist/internal/domain"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// Row is one breakdown line: a label with its spent amount and its share of
// the report's grand total.
type Row struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Pct    decimal.Decimal `json:"pct"`
}

// DayPoint is one day of the daily series. Days without purchases carry a
// zero amount.
type DayPoint struct {
	DateISO string          `json:"dateISO"`
	Amount  decimal.Decimal `json:"amount"`
}

// Comparison relates the report to the immediately preceding calendar month.
// ChangePct is nil when the previous month had no spending; there is no
// meaningful percentage against zero.
type Comparison struct {
	PrevFromISO string           `json:"prevFromISO"`
	PrevToISO   string           `json:"prevToISO"`
	PrevTotal   decimal.Decimal  `json:"prevTotal"`
	ChangePct   *decimal.Decimal `json:"changePct"`
}

// Report is the full aggregate over an inclusive date range.
type Report struct {
	FromISO    string          `json:"fromISO"`
	ToISO      string          `json:"toISO"`
	Total      decimal.Decimal `json:"total"`
	ByCategory []Row           `json:"byCategory"`
	ByStore    []Row           `json:"byStore"`
	Daily      []DayPoint      `json:"daily"`
	Comparison *Comparison     `json:"comparison,omitempty"`
}

// Build aggregates the purchases falling inside [fromISO, toISO], both ends
// inclusive.
func Build(purchases []domain.Purchase, fromISO, toISO string) (Report, error) {
	from, err := time.Parse(dateLayout, fromISO)
	if err != nil {
		return Report{}, fmt.Errorf("parse from date %q: %w", fromISO, err)
	}
	to, err := time.Parse(dateLayout, toISO)
	if err != nil {
		return Report{}, fmt.Errorf("parse to date %q: %w", toISO, err)
	}

	r := Report{
		FromISO:    fromISO,
		ToISO:      toISO,
		Total:      decimal.Zero,
		ByCategory: []Row{},
		ByStore:    []Row{},
		Daily:      []DayPoint{},
	}

	byCategory := map[string]decimal.Decimal{}
	byStore := map[string]decimal.Decimal{}
	byDay := map[string]decimal.Decimal{}

	for _, p := range purchases {
		if p.DateISO < fromISO || p.DateISO > toISO {
			continue
		}
		for _, it := range p.Items {
			line := it.LineTotal()
			r.Total = r.Total.Add(line)

			cat := it.Category
			if cat == "" {
				cat = catalog.CategoryOther
			}
			byCategory[cat] = byCategory[cat].Add(line)

			store := it.Store
			if store == "" {
				store = p.Store
			}
			byStore[store] = byStore[store].Add(line)

			byDay[p.DateISO] = byDay[p.DateISO].Add(line)
		}
	}

	r.ByCategory = sortedRows(byCategory, r.Total)
	r.ByStore = sortedRows(byStore, r.Total)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		iso := d.Format(dateLayout)
		amount, ok := byDay[iso]
		if !ok {
			amount = decimal.Zero
		}
		r.Daily = append(r.Daily, DayPoint{DateISO: iso, Amount: amount})
	}
	return r, nil
}

// BuildMonth aggregates one calendar month ("2006-01") and attaches the
// comparison against the month before it.
func BuildMonth(purchases []domain.Purchase, month string) (Report, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return Report{}, fmt.Errorf("parse month %q: %w", month, err)
	}
	last := first.AddDate(0, 1, -1)

	r, err := Build(purchases, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return Report{}, err
	}

	prevFirst := first.AddDate(0, -1, 0)
	prevLast := first.AddDate(0, 0, -1)
	prev, err := Build(purchases, prevFirst.Format(dateLayout), prevLast.Format(dateLayout))
	if err != nil {
		return Report{}, err
	}

	cmp := &Comparison{
		PrevFromISO: prev.FromISO,
		PrevToISO:   prev.ToISO,
		PrevTotal:   prev.Total,
	}
	if prev.Total.Sign() > 0 {
		change := r.Total.Sub(prev.Total).Div(prev.Total).Mul(hundred).Round(2)
		cmp.ChangePct = &change
	}
	r.Comparison = cmp
	return r, nil
}

// MonthTotal is one month of the all-time monthly totals view.
type MonthTotal struct {
	MonthISO string          `json:"monthISO"`
	Amount   decimal.Decimal `json:"amount"`
}

// Monthly groups the whole purchase history into per-month totals, oldest
// month first.
func Monthly(purchases []domain.Purchase) []MonthTotal {
	byMonth := map[string]decimal.Decimal{}
	for _, p := range purchases {
		if len(p.DateISO) < 7 {
			continue
		}
		month := p.DateISO[:7]
		byMonth[month] = byMonth[month].Add(p.Total)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	totals := make([]MonthTotal, 0, len(months))
	for _, month := range months {
		totals = append(totals, MonthTotal{MonthISO: month, Amount: byMonth[month]})
	}
	return totals
}

// sortedRows turns an aggregation map into rows sorted by amount,
// descending. Percentages are of the grand total, rounded to two places.
func sortedRows(m map[string]decimal.Decimal, total decimal.Decimal) []Row {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		amount := m[label]
		pct := decimal.Zero
		if total.Sign() > 0 {
			pct = amount.Div(total).Mul(hundred).Round(2)
		}
		rows = append(rows, Row{Label: label, Amount: amount, Pct: pct})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount.GreaterThan(rows[j].Amount) })
	return rows
}

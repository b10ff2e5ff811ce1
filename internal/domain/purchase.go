package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the immutable snapshot of a finalized cart. It is only ever
// created by Finalize and only ever read by the reports aggregator.
type Purchase struct {
	ID        string          `json:"id"`
	DateISO   string          `json:"dateISO"`
	Store     string          `json:"store"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

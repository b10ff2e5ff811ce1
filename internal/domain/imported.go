package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ImportedList is the buffered result of one receipt import attempt, kept so
// the user can review what the parser extracted before (or after) the items
// land in a bucket.
type ImportedList struct {
	ID       string          `json:"id"`
	Store    string          `json:"store"`
	DateISO  string          `json:"dateISO"`
	Items    []Item          `json:"items"`
	RawTotal decimal.Decimal `json:"rawTotal"`

	// Strategy and Confidence record which extractor produced the items, so
	// a desperate fallback is distinguishable from a clean parse.
	Strategy   string `json:"strategy"`
	Confidence string `json:"confidence"` // high | medium | low

	CreatedAt time.Time `json:"createdAt"`
}

// Signature is the coarse dedup key for imports: two imports of the same
// receipt replace each other. It is not a content hash and collides for
// different receipts from the same store, same day, same item count.
func (l ImportedList) Signature() string {
	return fmt.Sprintf("%s|%s|%d", l.Store, l.DateISO, len(l.Items))
}

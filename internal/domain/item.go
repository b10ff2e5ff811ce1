package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one line of a shopping list. The same record moves between the
// to-buy partition and the cart (InCart) and is finally snapshotted into a
// Purchase. Defaulting of category/icon/curiosity happens in the list
// manager's constructor, not at call sites.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Qty   decimal.Decimal `json:"qty"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"` // unit price, BRL

	// Weight carries the free-text observation field (brand, ripeness...);
	// the name is historical.
	Weight string `json:"weight,omitempty"`
	Note   string `json:"note,omitempty"` // curiosity text

	Icon       string `json:"icon,omitempty"`
	KcalPer100 *int   `json:"kcalPer100,omitempty"`

	Category string `json:"category"`
	Store    string `json:"store,omitempty"`
	InCart   bool   `json:"inCart"`

	CreatedAt time.Time `json:"createdAt"`
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(i.Qty)
}

// Bucket groups the items of one shopping trip: one (location, date) pair.
type Bucket struct {
	Location string `json:"location"`
	DateISO  string `json:"dateISO"` // YYYY-MM-DD
	Items    []Item `json:"items"`
}

// BucketKey identifies a bucket.
type BucketKey struct {
	Location string `json:"location"`
	DateISO  string `json:"dateISO"`
}

// Key returns the bucket's identifying pair.
func (b Bucket) Key() BucketKey {
	return BucketKey{Location: b.Location, DateISO: b.DateISO}
}

// ItemPatch is a partial update for an item. Nil fields are left untouched.
type ItemPatch struct {
	Name     *string          `json:"name,omitempty"`
	Qty      *decimal.Decimal `json:"qty,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Weight   *string          `json:"weight,omitempty"`
	Note     *string          `json:"note,omitempty"`
	Category *string          `json:"category,omitempty"`
	Store    *string          `json:"store,omitempty"`
}

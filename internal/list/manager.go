// Package list implements the shopping-list/cart operations over the
// (location, date) buckets. All mutations go through full-bucket
// copy-on-write saves; there is no partial aliasing of stored items.
package list

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/catalog"
	"github.com/ygglist/ygglist/internal/domain"
)

var (
	// ErrEmptyName rejects items without a name; the form silently
	// no-ops on these, the API answers 400.
	ErrEmptyName = errors.New("item name is required")

	// ErrItemNotFound is returned for operations on unknown item IDs.
	ErrItemNotFound = errors.New("item not found")
)

// Store is the slice of the persistent store the manager needs.
type Store interface {
	Bucket(location, dateISO string) domain.Bucket
	SaveBucket(domain.Bucket)
	AddPurchase(domain.Purchase)
}

// Manager applies list/cart operations to buckets.
type Manager struct {
	store Store
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// ItemInput is the raw material for a new item. Everything except the name
// is optional; defaults (qty 1, unit "un", catalog category/icon/curiosity)
// are applied here and nowhere else.
type ItemInput struct {
	Name     string           `json:"name"`
	Qty      *decimal.Decimal `json:"qty,omitempty"`
	Unit     string           `json:"unit,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Weight   string           `json:"weight,omitempty"`
	Note     string           `json:"note,omitempty"`
	Category string           `json:"category,omitempty"`
	Store    string           `json:"store,omitempty"`
}

// NewItem builds a fully-defaulted item from raw input.
func NewItem(in ItemInput) (domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Item{}, ErrEmptyName
	}

	item := domain.Item{
		ID:        uuid.New().String(),
		Name:      name,
		Qty:       decimal.NewFromInt(1),
		Unit:      "un",
		Price:     decimal.Zero,
		Weight:    strings.TrimSpace(in.Weight),
		Note:      strings.TrimSpace(in.Note),
		Category:  strings.TrimSpace(in.Category),
		Store:     strings.TrimSpace(in.Store),
		CreatedAt: time.Now().UTC(),
	}
	if in.Qty != nil && in.Qty.Sign() > 0 {
		item.Qty = *in.Qty
	}
	if in.Unit != "" {
		item.Unit = strings.ToLower(strings.TrimSpace(in.Unit))
	}
	if in.Price != nil {
		item.Price = *in.Price
	}

	entry := catalog.Find(name)
	if item.Category == "" {
		if entry != nil {
			item.Category = entry.Category
		} else {
			item.Category = catalog.GuessCategory(name)
		}
	}
	if entry != nil {
		item.Icon = entry.Icon
		if entry.KcalPer100 > 0 {
			kcal := entry.KcalPer100
			item.KcalPer100 = &kcal
		}
		if item.Note == "" {
			item.Note = entry.Curiosity
		}
	}
	if item.Icon == "" {
		item.Icon = catalog.CategoryIcon(item.Category)
	}
	return item, nil
}

// Add creates an item in the bucket, either on the to-buy side or straight
// into the cart. New items go to the front, matching the historical UI.
func (m *Manager) Add(location, dateISO string, in ItemInput, toCart bool) (domain.Item, error) {
	item, err := NewItem(in)
	if err != nil {
		return domain.Item{}, err
	}
	item.InCart = toCart

	b := m.store.Bucket(location, dateISO)
	b.Items = append([]domain.Item{item}, b.Items...)
	m.store.SaveBucket(b)
	return item, nil
}

// Update applies a partial patch to one item.
func (m *Manager) Update(location, dateISO, id string, patch domain.ItemPatch) (domain.Item, error) {
	b := m.store.Bucket(location, dateISO)
	for i := range b.Items {
		if b.Items[i].ID != id {
			continue
		}
		applyPatch(&b.Items[i], patch)
		updated := b.Items[i]
		m.store.SaveBucket(b)
		return updated, nil
	}
	return domain.Item{}, ErrItemNotFound
}

// Remove deletes one item from the bucket.
func (m *Manager) Remove(location, dateISO, id string) error {
	b := m.store.Bucket(location, dateISO)
	for i := range b.Items {
		if b.Items[i].ID == id {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			m.store.SaveBucket(b)
			return nil
		}
	}
	return ErrItemNotFound
}

// ToggleCart moves one item between the to-buy partition and the cart. No
// other field changes.
func (m *Manager) ToggleCart(location, dateISO, id string, inCart bool) (domain.Item, error) {
	b := m.store.Bucket(location, dateISO)
	for i := range b.Items {
		if b.Items[i].ID != id {
			continue
		}
		b.Items[i].InCart = inCart
		updated := b.Items[i]
		m.store.SaveBucket(b)
		return updated, nil
	}
	return domain.Item{}, ErrItemNotFound
}

// MoveAll flags every item in the bucket as in (or out of) the cart.
// Returns how many items changed partition.
func (m *Manager) MoveAll(location, dateISO string, toCart bool) int {
	b := m.store.Bucket(location, dateISO)
	moved := 0
	for i := range b.Items {
		if b.Items[i].InCart != toCart {
			b.Items[i].InCart = toCart
			moved++
		}
	}
	if moved > 0 {
		m.store.SaveBucket(b)
	}
	return moved
}

// Finalize snapshots every in-cart item of the bucket into one new purchase
// record and removes those items from the bucket. With an empty cart it is
// a no-op and returns nil.
func (m *Manager) Finalize(location, dateISO string) *domain.Purchase {
	b := m.store.Bucket(location, dateISO)

	var cart, remaining []domain.Item
	for _, it := range b.Items {
		if it.InCart {
			cart = append(cart, it)
		} else {
			remaining = append(remaining, it)
		}
	}
	if len(cart) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, it := range cart {
		total = total.Add(it.LineTotal())
	}

	p := domain.Purchase{
		ID:        uuid.New().String(),
		DateISO:   dateISO,
		Store:     location,
		Items:     cart,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	b.Items = remaining
	m.store.SaveBucket(b)
	m.store.AddPurchase(p)
	return &p
}

// View is a bucket split into its two display partitions, each sorted and
// totalled.
type View struct {
	Location   string          `json:"location"`
	DateISO    string          `json:"dateISO"`
	ToBuy      []domain.Item   `json:"toBuy"`
	Cart       []domain.Item   `json:"cart"`
	ToBuyTotal decimal.Decimal `json:"toBuyTotal"`
	CartTotal  decimal.Decimal `json:"cartTotal"`
}

// View renders the bucket the way the lists screen shows it.
func (m *Manager) View(location, dateISO string) View {
	b := m.store.Bucket(location, dateISO)
	v := View{
		Location:   location,
		DateISO:    dateISO,
		ToBuy:      []domain.Item{},
		Cart:       []domain.Item{},
		ToBuyTotal: decimal.Zero,
		CartTotal:  decimal.Zero,
	}
	for _, it := range b.Items {
		if it.InCart {
			v.Cart = append(v.Cart, it)
			v.CartTotal = v.CartTotal.Add(it.LineTotal())
		} else {
			v.ToBuy = append(v.ToBuy, it)
			v.ToBuyTotal = v.ToBuyTotal.Add(it.LineTotal())
		}
	}
	SortItems(v.ToBuy)
	SortItems(v.Cart)
	return v
}

// SortItems orders items for display: catalog category rank first (unknown
// categories last), then case-insensitive name.
func SortItems(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := catalog.CategoryRank(items[i].Category), catalog.CategoryRank(items[j].Category)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

func applyPatch(item *domain.Item, patch domain.ItemPatch) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Qty != nil && patch.Qty.Sign() > 0 {
		item.Qty = *patch.Qty
	}
	if patch.Unit != nil && *patch.Unit != "" {
		item.Unit = strings.ToLower(strings.TrimSpace(*patch.Unit))
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Weight != nil {
		item.Weight = strings.TrimSpace(*patch.Weight)
	}
	if patch.Note != nil {
		item.Note = strings.TrimSpace(*patch.Note)
	}
	if patch.Category != nil && *patch.Category != "" {
		item.Category = *patch.Category
	}
	if patch.Store != nil {
		item.Store = strings.TrimSpace(*patch.Store)
	}
}

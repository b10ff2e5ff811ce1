package list

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygglist/ygglist/internal/domain"
)

// fakeStore keeps everything in memory, one bucket deep.
type fakeStore struct {
	buckets   map[string]domain.Bucket
	purchases []domain.Purchase
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]domain.Bucket{}}
}

func (f *fakeStore) Bucket(location, dateISO string) domain.Bucket {
	if b, ok := f.buckets[location+"|"+dateISO]; ok {
		return b
	}
	return domain.Bucket{Location: location, DateISO: dateISO}
}

func (f *fakeStore) SaveBucket(b domain.Bucket) {
	f.buckets[b.Location+"|"+b.DateISO] = b
}

func (f *fakeStore) AddPurchase(p domain.Purchase) {
	f.purchases = append(f.purchases, p)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewItem_Defaults(t *testing.T) {
	item, err := NewItem(ItemInput{Name: "  Banana  "})
	require.NoError(t, err)

	assert.Equal(t, "Banana", item.Name)
	assert.True(t, item.Qty.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "un", item.Unit)
	assert.True(t, item.Price.IsZero())
	assert.Equal(t, "Hortifruti", item.Category)
	assert.Equal(t, "🍌", item.Icon)
	require.NotNil(t, item.KcalPer100)
	assert.Equal(t, 89, *item.KcalPer100)
	assert.NotEmpty(t, item.Note) // curiosity filled from the catalog
	assert.NotEmpty(t, item.ID)
}

func TestNewItem_ExplicitFieldsWin(t *testing.T) {
	item, err := NewItem(ItemInput{
		Name:     "Banana prata",
		Qty:      dec("2.5"),
		Unit:     "KG",
		Price:    dec("4.99"),
		Category: "Mercearia",
		Note:     "da feira",
	})
	require.NoError(t, err)

	assert.True(t, item.Qty.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "kg", item.Unit)
	assert.Equal(t, "Mercearia", item.Category)
	assert.Equal(t, "da feira", item.Note)
}

func TestNewItem_EmptyName(t *testing.T) {
	_, err := NewItem(ItemInput{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewItem_UnknownNameGuessesCategory(t *testing.T) {
	item, err := NewItem(ItemInput{Name: "Filé de frango temperado"})
	require.NoError(t, err)
	assert.Equal(t, "Carnes", item.Category)

	item, err = NewItem(ItemInput{Name: "Coisa inexistente"})
	require.NoError(t, err)
	assert.Equal(t, "Outros", item.Category)
}

func TestManager_AddAndView(t *testing.T) {
	m := NewManager(newFakeStore())

	_, err := m.Add("Mercado", "2026-03-10", ItemInput{Name: "Arroz", Price: dec("25.00")}, false)
	require.NoError(t, err)
	_, err = m.Add("Mercado", "2026-03-10", ItemInput{Name: "Banana", Qty: dec("2"), Price: dec("5.00")}, true)
	require.NoError(t, err)

	v := m.View("Mercado", "2026-03-10")
	require.Len(t, v.ToBuy, 1)
	require.Len(t, v.Cart, 1)
	assert.True(t, v.ToBuyTotal.Equal(decimal.RequireFromString("25")))
	assert.True(t, v.CartTotal.Equal(decimal.RequireFromString("10")))
}

func TestManager_UpdateAndRemove(t *testing.T) {
	m := NewManager(newFakeStore())

	item, err := m.Add("Mercado", "2026-03-10", ItemInput{Name: "Arroz"}, false)
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("22.90")
	updated, err := m.Update("Mercado", "2026-03-10", item.ID, domain.ItemPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Arroz", updated.Name)

	_, err = m.Update("Mercado", "2026-03-10", "nope", domain.ItemPatch{})
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, m.Remove("Mercado", "2026-03-10", item.ID))
	assert.Empty(t, m.View("Mercado", "2026-03-10").ToBuy)
	assert.ErrorIs(t, m.Remove("Mercado", "2026-03-10", item.ID), ErrItemNotFound)
}

func TestManager_ToggleCartKeepsCount(t *testing.T) {
	m := NewManager(newFakeStore())

	a, _ := m.Add("Feira", "2026-03-01", ItemInput{Name: "Alface"}, false)
	b, _ := m.Add("Feira", "2026-03-01", ItemInput{Name: "Tomate"}, false)

	_, err := m.ToggleCart("Feira", "2026-03-01", a.ID, true)
	require.NoError(t, err)

	v := m.View("Feira", "2026-03-01")
	assert.Len(t, v.ToBuy, 1)
	assert.Len(t, v.Cart, 1)
	assert.Equal(t, 2, len(v.ToBuy)+len(v.Cart))

	_, err = m.ToggleCart("Feira", "2026-03-01", b.ID, true)
	require.NoError(t, err)
	v = m.View("Feira", "2026-03-01")
	assert.Empty(t, v.ToBuy)
	assert.Len(t, v.Cart, 2)
}

func TestManager_MoveAll(t *testing.T) {
	m := NewManager(newFakeStore())

	m.Add("Feira", "2026-03-01", ItemInput{Name: "Alface"}, false)
	m.Add("Feira", "2026-03-01", ItemInput{Name: "Tomate"}, true)

	assert.Equal(t, 1, m.MoveAll("Feira", "2026-03-01", true))
	assert.Len(t, m.View("Feira", "2026-03-01").Cart, 2)

	assert.Equal(t, 2, m.MoveAll("Feira", "2026-03-01", false))
	assert.Equal(t, 0, m.MoveAll("Feira", "2026-03-01", false))
}

func TestManager_Finalize(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store)

	m.Add("Mercado", "2026-03-10", ItemInput{Name: "Arroz", Price: dec("25.00")}, true)
	m.Add("Mercado", "2026-03-10", ItemInput{Name: "Banana", Qty: dec("2"), Price: dec("5.00")}, true)
	m.Add("Mercado", "2026-03-10", ItemInput{Name: "Café"}, false)

	p := m.Finalize("Mercado", "2026-03-10")
	require.NotNil(t, p)
	assert.Equal(t, "Mercado", p.Store)
	assert.Equal(t, "2026-03-10", p.DateISO)
	assert.Len(t, p.Items, 2)
	assert.True(t, p.Total.Equal(decimal.RequireFromString("35")))
	require.Len(t, store.purchases, 1)

	// Cart is emptied, to-buy items stay.
	v := m.View("Mercado", "2026-03-10")
	assert.Empty(t, v.Cart)
	assert.Len(t, v.ToBuy, 1)
}

func TestManager_FinalizeEmptyCartNoOp(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store)

	m.Add("Mercado", "2026-03-10", ItemInput{Name: "Arroz"}, false)

	assert.Nil(t, m.Finalize("Mercado", "2026-03-10"))
	assert.Empty(t, store.purchases)
	assert.Len(t, m.View("Mercado", "2026-03-10").ToBuy, 1)
}

func TestSortItems_CategoryRankThenName(t *testing.T) {
	items := []domain.Item{
		{Name: "arroz", Category: "Mercearia"},
		{Name: "Sabão", Category: "Limpeza"},
		{Name: "Banana", Category: "Hortifruti"},
		{Name: "Abacate", Category: "Hortifruti"},
		{Name: "Coisa", Category: "Outros"},
	}
	SortItems(items)

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	assert.Equal(t, []string{"Abacate", "Banana", "arroz", "Sabão", "Coisa"}, names)
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/logger"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ygglist.json")
	s, err := New(path, logger.NewNop())
	require.NoError(t, err)
	return s, path
}

func testItem(name string) domain.Item {
	return domain.Item{
		ID:        name,
		Name:      name,
		Qty:       decimal.NewFromInt(1),
		Unit:      "un",
		Price:     decimal.RequireFromString("9.90"),
		Category:  "Mercearia",
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_BucketRoundtrip(t *testing.T) {
	s, path := newTestStore(t)

	b := domain.Bucket{Location: "Mercado Central", DateISO: "2026-03-10", Items: []domain.Item{testItem("Arroz")}}
	s.SaveBucket(b)

	got := s.Bucket("Mercado Central", "2026-03-10")
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Arroz", got.Items[0].Name)

	// Reopen from disk.
	s2, err := New(path, logger.NewNop())
	require.NoError(t, err)
	got = s2.Bucket("Mercado Central", "2026-03-10")
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("9.90")))
}

func TestStore_MissingBucketIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got := s.Bucket("Feira", "2026-01-01")
	assert.Equal(t, "Feira", got.Location)
	assert.Empty(t, got.Items)
	assert.Empty(t, s.BucketKeys())
}

func TestStore_EmptyBucketDropped(t *testing.T) {
	s, _ := newTestStore(t)

	s.SaveBucket(domain.Bucket{Location: "Feira", DateISO: "2026-01-01", Items: []domain.Item{testItem("Alface")}})
	require.Len(t, s.BucketKeys(), 1)

	s.SaveBucket(domain.Bucket{Location: "Feira", DateISO: "2026-01-01"})
	assert.Empty(t, s.BucketKeys())
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ygglist.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{not json"), 0o644))

	s, err := New(path, logger.NewNop())
	require.NoError(t, err)
	assert.Empty(t, s.BucketKeys())
	assert.Empty(t, s.Purchases())
}

func TestStore_LegacyMigration(t *testing.T) {
	legacy := `{
	  "ygglist:data:v1": {"Mercado|2026-02-01": [{"id":"a","name":"Café","qty":"1","price":"19.90","category":"Mercearia","inCart":false,"createdAt":"2026-02-01T10:00:00Z"}]},
	  "ygglist:purchases:v1": [{"id":"p1","dateISO":"2026-01-15","store":"Mercado","items":[],"total":"120.5","createdAt":"2026-01-15T18:00:00Z"}],
	  "ygglist:user": {"name":"Lucas"},
	  "ygglist:imported:v1": [{"id":"i1","store":"Loja","dateISO":"2026-01-10","items":[],"rawTotal":"10","strategy":"nfce-layout","confidence":"high","createdAt":"2026-01-10T12:00:00Z"}],
	  "ygglist:imported-lists:v1": [{"id":"i2","store":"Loja","dateISO":"2026-01-11","items":[],"rawTotal":"12","strategy":"html-table","confidence":"medium","createdAt":"2026-01-11T12:00:00Z"}]
	}`
	path := filepath.Join(t.TempDir(), "ygglist.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s, err := New(path, logger.NewNop())
	require.NoError(t, err)

	b := s.Bucket("Mercado", "2026-02-01")
	require.Len(t, b.Items, 1)
	assert.Equal(t, "Café", b.Items[0].Name)
	require.Len(t, s.Purchases(), 1)
	require.NotNil(t, s.Session())
	assert.Equal(t, "Lucas", s.Session().Name)
	// Both competing import keys merged.
	assert.Len(t, s.Imports(), 2)

	// The migration rewrites the file as a versioned envelope.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 2`)

	s2, err := New(path, logger.NewNop())
	require.NoError(t, err)
	assert.Len(t, s2.Imports(), 2)
}

func TestStore_UpsertImportReplacesBySignature(t *testing.T) {
	s, _ := newTestStore(t)

	first := domain.ImportedList{
		ID: "i1", Store: "Loja", DateISO: "2026-03-01",
		Items: []domain.Item{testItem("Arroz")}, Strategy: "nfce-layout",
		Confidence: "high", CreatedAt: time.Now().UTC(),
	}
	s.UpsertImport(first)

	second := first
	second.ID = "i2"
	second.Items = []domain.Item{testItem("Feijão")} // same count, same signature
	s.UpsertImport(second)

	imports := s.Imports()
	require.Len(t, imports, 1)
	assert.Equal(t, "i2", imports[0].ID)
	assert.Equal(t, "Feijão", imports[0].Items[0].Name)

	// Different item count: different signature, kept alongside.
	third := first
	third.ID = "i3"
	third.Items = append(third.Items, testItem("Açúcar"))
	s.UpsertImport(third)
	assert.Len(t, s.Imports(), 2)
}

func TestStore_SessionAndPreferences(t *testing.T) {
	s, path := newTestStore(t)

	assert.Nil(t, s.Session())
	s.SetSession(&domain.Session{Name: "Lucas"})
	s.SetPreferences(domain.Preferences{WeatherCity: "Salvador", LastTab: "reports"})

	s2, err := New(path, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, s2.Session())
	assert.Equal(t, "Lucas", s2.Session().Name)
	assert.Equal(t, "Salvador", s2.Preferences().WeatherCity)

	s2.SetSession(nil)
	assert.Nil(t, s2.Session())
}

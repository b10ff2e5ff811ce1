package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/jobs"
	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/nfce"
)

type fakeStore struct {
	buckets map[string]domain.Bucket
	imports []domain.ImportedList
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

func (f *fakeStore) UpsertImport(l domain.ImportedList) {
	f.imports = append(f.imports, l)
}

type fakeFetcher struct {
	receipt *nfce.Receipt
	err     error
	gotURL  string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*nfce.Receipt, error) {
	f.gotURL = url
	return f.receipt, f.err
}

func TestHandle_TextImport(t *testing.T) {
	store := newFakeStore()
	imp := New(&fakeFetcher{}, store, logger.NewNop())

	job := &jobs.ImportReceiptJob{
		JobID:   "j1",
		Source:  jobs.ImportSourceText,
		RawText: "Compra em 10/03/2026\nArroz 5kg Qtde total de ítens: 1.0000 UN: UN Valor total R$: R$ 25,00",
	}
	require.NoError(t, imp.Handle(context.Background(), job))

	require.Len(t, store.imports, 1)
	imported := store.imports[0]
	assert.Equal(t, "2026-03-10", imported.DateISO)
	assert.Equal(t, "nfce-layout", imported.Strategy)
	require.Len(t, imported.Items, 1)
	assert.Equal(t, "Arroz 5kg", imported.Items[0].Name)
	assert.Equal(t, "Mercearia", imported.Items[0].Category)
	assert.True(t, imported.Items[0].Price.Equal(decimal.RequireFromString("25")))

	assert.Equal(t, imported.ID, job.ResultID)
	assert.Equal(t, 1, job.ItemCount)

	b := store.Bucket(job.Location, "2026-03-10")
	require.Len(t, b.Items, 1)
	assert.Equal(t, "Arroz 5kg", b.Items[0].Name)
}

func TestHandle_URLImport(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{receipt: &nfce.Receipt{
		Store:   "Mercado Central",
		DateISO: "2026-03-15",
		Items: []nfce.Item{
			{Name: "Banana prata", Qty: decimal.RequireFromString("2.5"), Unit: "kg",
				Price: decimal.RequireFromString("5.00")},
		},
		RawTotal:   decimal.RequireFromString("12.50"),
		Strategy:   "html-table",
		Confidence: nfce.ConfidenceMedium,
	}}
	imp := New(fetcher, store, logger.NewNop())

	job := &jobs.ImportReceiptJob{
		JobID:  "j2",
		Source: jobs.ImportSourceURL,
		URL:    "http://sefaz.example/nfce?p=123",
	}
	require.NoError(t, imp.Handle(context.Background(), job))

	assert.Equal(t, "http://sefaz.example/nfce?p=123", fetcher.gotURL)
	assert.Equal(t, "Mercado Central", job.Location)
	assert.Equal(t, "2026-03-15", job.DateISO)

	b := store.Bucket("Mercado Central", "2026-03-15")
	require.Len(t, b.Items, 1)
	assert.Equal(t, "Hortifruti", b.Items[0].Category)
	assert.Equal(t, "Mercado Central", b.Items[0].Store)
}

func TestHandle_FetchErrorFailsWholeImport(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{err: errors.New("tempo esgotado")}
	imp := New(fetcher, store, logger.NewNop())

	job := &jobs.ImportReceiptJob{JobID: "j3", Source: jobs.ImportSourceURL, URL: "http://x"}
	err := imp.Handle(context.Background(), job)
	require.Error(t, err)

	assert.Empty(t, store.imports)
	assert.Empty(t, store.buckets)
	assert.Empty(t, job.ResultID)
}

func TestHandle_NoItemsIsError(t *testing.T) {
	imp := New(&fakeFetcher{}, newFakeStore(), logger.NewNop())

	job := &jobs.ImportReceiptJob{JobID: "j4", Source: jobs.ImportSourceText, RawText: "nada aqui"}
	err := imp.Handle(context.Background(), job)
	assert.ErrorIs(t, err, nfce.ErrNoItems)
}

func TestHandle_UnknownJobType(t *testing.T) {
	imp := New(&fakeFetcher{}, newFakeStore(), logger.NewNop())

	err := imp.Handle(context.Background(), fakeJob{})
	assert.Error(t, err)
}

type fakeJob struct{}

func (fakeJob) GetID() string            { return "x" }
func (fakeJob) GetType() jobs.JobType    { return "other" }
func (fakeJob) GetStatus() jobs.JobStatus { return jobs.JobStatusPending }

func TestDefaultDateStep_FillsToday(t *testing.T) {
	fixed := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	step := &DefaultDateStep{Now: func() time.Time { return fixed }}

	state := &State{
		Job:     &jobs.ImportReceiptJob{Source: jobs.ImportSourceText},
		Receipt: &nfce.Receipt{Store: "Loja"},
	}
	require.NoError(t, step.Execute(context.Background(), state))

	assert.Equal(t, "2026-03-20", state.Receipt.DateISO)
	assert.Equal(t, "2026-03-20", state.Job.DateISO)
	assert.Equal(t, "Loja", state.Job.Location)
}

func TestDefaultDateStep_KeepsExplicitTarget(t *testing.T) {
	step := &DefaultDateStep{}

	state := &State{
		Job:     &jobs.ImportReceiptJob{Location: "Feira", DateISO: "2026-03-01"},
		Receipt: &nfce.Receipt{Store: "Loja", DateISO: "2026-02-20"},
	}
	require.NoError(t, step.Execute(context.Background(), state))

	assert.Equal(t, "Feira", state.Job.Location)
	assert.Equal(t, "2026-03-01", state.Job.DateISO)
}

// Package importer turns a receipt (URL or pasted text) into an imported
// list and a filled bucket. The work is a fixed sequence of steps sharing
// one state; any failing step aborts the whole import.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/domain"
	"github.com/ygglist/ygglist/internal/jobs"
	"github.com/ygglist/ygglist/internal/list"
	"github.com/ygglist/ygglist/internal/nfce"
)

// Fetcher retrieves and extracts a receipt page by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*nfce.Receipt, error)
}

// Store is the slice of the persistent store the importer needs.
type Store interface {
	Bucket(location, dateISO string) domain.Bucket
	SaveBucket(domain.Bucket)
	UpsertImport(domain.ImportedList)
}

// Step represents a single step in the import pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state across all import steps.
type State struct {
	Job     *jobs.ImportReceiptJob
	Receipt *nfce.Receipt
	Items   []domain.Item
	List    domain.ImportedList
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first error.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("import step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Step 1: ExtractStep obtains the receipt, by HTTP fetch or from the pasted
// text, depending on the job source.
type ExtractStep struct {
	Fetcher Fetcher
}

func (s *ExtractStep) Execute(ctx context.Context, state *State) error {
	switch state.Job.Source {
	case jobs.ImportSourceURL:
		receipt, err := s.Fetcher.Fetch(ctx, state.Job.URL)
		if err != nil {
			return err
		}
		state.Receipt = receipt
	case jobs.ImportSourceText:
		receipt, err := nfce.ExtractText(state.Job.RawText)
		if err != nil {
			return err
		}
		state.Receipt = receipt
	default:
		return fmt.Errorf("unknown import source %q", state.Job.Source)
	}
	return nil
}

// Step 2: DefaultDateStep fills in today when the receipt carries no date.
type DefaultDateStep struct {
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultDateStep) Execute(ctx context.Context, state *State) error {
	if state.Receipt.DateISO == "" {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		state.Receipt.DateISO = now().Format("2006-01-02")
	}
	if state.Job.DateISO == "" {
		state.Job.DateISO = state.Receipt.DateISO
	}
	if state.Job.Location == "" {
		state.Job.Location = state.Receipt.Store
	}
	return nil
}

// Step 3: CategorizeStep turns the parsed lines into full items, running
// every name through the catalog for category, icon and kcal defaults.
// Lines the item constructor rejects are dropped, not fatal.
type CategorizeStep struct{}

func (s *CategorizeStep) Execute(ctx context.Context, state *State) error {
	for _, line := range state.Receipt.Items {
		qty, price := line.Qty, line.Price
		item, err := list.NewItem(list.ItemInput{
			Name:  line.Name,
			Qty:   &qty,
			Unit:  line.Unit,
			Price: &price,
			Store: state.Job.Location,
		})
		if err != nil {
			continue
		}
		state.Items = append(state.Items, item)
	}
	if len(state.Items) == 0 {
		return nfce.ErrNoItems
	}
	return nil
}

// Step 4: BuildListStep assembles the imported-list record.
type BuildListStep struct{}

func (s *BuildListStep) Execute(ctx context.Context, state *State) error {
	state.List = domain.ImportedList{
		ID:         uuid.New().String(),
		Store:      state.Job.Location,
		DateISO:    state.Job.DateISO,
		Items:      state.Items,
		RawTotal:   state.Receipt.RawTotal,
		Strategy:   state.Receipt.Strategy,
		Confidence: string(state.Receipt.Confidence),
		CreatedAt:  time.Now().UTC(),
	}
	return nil
}

// Step 5: PersistStep saves the imported list (replacing a prior import
// with the same signature) and appends the items to the target bucket.
type PersistStep struct {
	Store Store
}

func (s *PersistStep) Execute(ctx context.Context, state *State) error {
	s.Store.UpsertImport(state.List)

	b := s.Store.Bucket(state.Job.Location, state.Job.DateISO)
	b.Items = append(b.Items, state.Items...)
	s.Store.SaveBucket(b)
	return nil
}

// Importer wires the standard pipeline behind the job queue handler.
type Importer struct {
	pipeline *Pipeline
	log      zerolog.Logger
}

// New creates an importer with the standard 5-step pipeline.
func New(fetcher Fetcher, store Store, log zerolog.Logger) *Importer {
	return &Importer{
		pipeline: NewPipeline(
			&ExtractStep{Fetcher: fetcher},
			&DefaultDateStep{},
			&CategorizeStep{},
			&BuildListStep{},
			&PersistStep{Store: store},
		),
		log: log,
	}
}

// Handle processes one queued import job. It satisfies jobs.JobHandler.
func (i *Importer) Handle(ctx context.Context, job jobs.Job) error {
	importJob, ok := job.(*jobs.ImportReceiptJob)
	if !ok {
		return fmt.Errorf("unexpected job type %q", job.GetType())
	}

	state := &State{Job: importJob}
	if err := i.pipeline.Execute(ctx, state); err != nil {
		i.log.Warn().Err(err).Str("job_id", importJob.JobID).Msg("Receipt import failed")
		return err
	}

	importJob.ResultID = state.List.ID
	importJob.ItemCount = len(state.List.Items)
	i.log.Info().
		Str("job_id", importJob.JobID).
		Str("store", state.List.Store).
		Int("items", importJob.ItemCount).
		Str("strategy", state.List.Strategy).
		Msg("Receipt imported")
	return nil
}

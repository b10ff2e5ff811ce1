package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeImportReceipt represents a receipt import job.
	JobTypeImportReceipt JobType = "import_receipt"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
)

// ImportSource says where the receipt content comes from.
type ImportSource string

const (
	// ImportSourceURL fetches the receipt page over HTTP.
	ImportSourceURL ImportSource = "url"
	// ImportSourceText parses pasted freeform receipt text.
	ImportSourceText ImportSource = "text"
)

// ImportReceiptJob represents a job to import one receipt. Imports are
// all-or-nothing and never retried: a failed job stays failed and the user
// resubmits.
type ImportReceiptJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Source says whether URL or RawText carries the receipt.
	Source ImportSource `json:"source"`

	// URL is the receipt page address, for URL imports.
	URL string `json:"url,omitempty"`

	// RawText is the pasted receipt text, for text imports.
	RawText string `json:"raw_text,omitempty"`

	// Location is the target bucket location; empty means the parsed
	// store name.
	Location string `json:"location,omitempty"`

	// DateISO is the target bucket date; empty means the parsed (or
	// current) date.
	DateISO string `json:"date_iso,omitempty"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// ResultID is the ID of the imported list once the job completes.
	ResultID string `json:"result_id,omitempty"`

	// ItemCount is how many items the import produced.
	ItemCount int `json:"item_count,omitempty"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`
}

// Job is a generic interface for all job types.
type Job interface {
	// GetID returns the unique job identifier.
	GetID() string

	// GetType returns the job type.
	GetType() JobType

	// GetStatus returns the current job status.
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *ImportReceiptJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *ImportReceiptJob) GetType() JobType {
	return JobTypeImportReceipt
}

// GetStatus implements the Job interface.
func (j *ImportReceiptJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishImportReceipt publishes a receipt import job.
	PublishImportReceipt(ctx context.Context, job *ImportReceiptJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler is a function that processes a job.
type JobHandler func(ctx context.Context, job Job) error

// JobStore defines the interface for storing and retrieving job status, so
// the UI can poll an import it kicked off.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *ImportReceiptJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*ImportReceiptJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*ImportReceiptJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}

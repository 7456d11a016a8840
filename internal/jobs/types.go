// Package jobs defines asynchronous assessment jobs and the queue contracts
// that carry them.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/vannoorsab/FINAI/internal/domain"
)

var (
	// ErrQueueClosed is returned when publishing to a stopped queue.
	ErrQueueClosed = errors.New("queue is closed")
	// ErrQueueFull is returned when the buffer has no room for another job.
	ErrQueueFull = errors.New("queue is full")
)

// JobStatus is the lifecycle state of an AssessJob.
type JobStatus string

// Jobs move pending -> running -> completed|failed. Failures are terminal.
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// AssessJob is a request to assess one statement in the background.
// Exactly one of Document and SourceURI is set.
type AssessJob struct {
	JobID     string          `json:"job_id"`
	Strategy  domain.Strategy `json:"strategy"`
	SourceURI string          `json:"source_uri,omitempty"`
	// Document is the statement body; job stores do not keep it.
	Document []byte `json:"-"`

	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`

	Result *domain.Assessment `json:"result,omitempty"`
}

// Publisher hands jobs to workers.
type Publisher interface {
	// PublishAssess enqueues job and returns its ID. The ID is also
	// returned when the job was recorded but could not be queued.
	PublishAssess(ctx context.Context, job *AssessJob) (string, error)
	Close() error
}

// Consumer runs a JobHandler for every published job.
type Consumer interface {
	Start(ctx context.Context, handler JobHandler) error
	// Stop waits for running jobs and fails the ones still queued.
	Stop(ctx context.Context) error
}

// JobHandler assesses the statement carried by job.
type JobHandler func(ctx context.Context, job *AssessJob) (*domain.Assessment, error)

// JobStore records job state for status queries.
type JobStore interface {
	SaveJob(ctx context.Context, job *AssessJob) error
	// GetJob wraps domain.ErrNotFound for unknown IDs.
	GetJob(ctx context.Context, jobID string) (*AssessJob, error)
	// ListJobs returns matching jobs newest first.
	ListJobs(ctx context.Context, filter JobFilter) ([]*AssessJob, error)
}

// JobFilter narrows ListJobs. Zero values match everything.
type JobFilter struct {
	Status JobStatus
	Limit  int
	Offset int
}

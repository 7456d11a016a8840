// Package inmemory provides a channel-backed job queue and job store for
// single-instance deployments and tests.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/jobs"
	"github.com/vannoorsab/FINAI/internal/logger"
)

// Aliases so callers of this package need not import jobs for the sentinels.
var (
	ErrQueueClosed = jobs.ErrQueueClosed
	ErrQueueFull   = jobs.ErrQueueFull
)

const stoppedMessage = "queue stopped before the job was processed"

// Queue is an in-memory implementation of job publisher and consumer.
// It uses Go channels for job distribution and is safe for concurrent use.
type Queue struct {
	jobChan   chan *jobs.AssessJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	store     jobs.JobStore
	workers   int
	closed    bool
	now       func() time.Time
}

// NewQueue creates a new in-memory job queue. bufferSize bounds how many
// jobs may wait; workers is the number of concurrent handlers.
func NewQueue(bufferSize, workers int, store jobs.JobStore) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		jobChan:   make(chan *jobs.AssessJob, bufferSize),
		closeChan: make(chan struct{}),
		store:     store,
		workers:   workers,
		now:       time.Now,
	}
}

// PublishAssess enqueues a copy of job. It never blocks: a full buffer
// fails the job immediately with ErrQueueFull.
func (q *Queue) PublishAssess(ctx context.Context, job *jobs.AssessJob) (string, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return "", ErrQueueClosed
	}

	queued := *job
	if queued.JobID == "" {
		queued.JobID = uuid.New().String()
	}
	queued.Status = jobs.JobStatusPending
	if queued.CreatedAt.IsZero() {
		queued.CreatedAt = q.now()
	}

	if err := q.save(ctx, &queued); err != nil {
		return "", fmt.Errorf("failed to save job: %w", err)
	}

	select {
	case q.jobChan <- &queued:
		return queued.JobID, nil
	default:
		q.finish(ctx, &queued, ErrQueueFull)
		return queued.JobID, ErrQueueFull
	}
}

// Start launches the workers. They run until ctx is cancelled or Stop is called.
func (q *Queue) Start(ctx context.Context, handler jobs.JobHandler) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}

	return nil
}

func (q *Queue) worker(ctx context.Context, handler jobs.JobHandler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			if job == nil {
				return
			}
			q.processJob(ctx, job, handler)
		}
	}
}

// processJob runs the handler once. Failures are terminal.
func (q *Queue) processJob(ctx context.Context, job *jobs.AssessJob, handler jobs.JobHandler) {
	log := logger.FromContext(ctx).With().Str("job_id", job.JobID).Logger()

	job.Status = jobs.JobStatusRunning
	started := q.now()
	job.StartedAt = &started
	_ = q.save(ctx, job)

	result, err := q.run(ctx, job, handler)
	job.Result = result
	q.finish(ctx, job, err)

	if err != nil {
		log.Error().Err(err).Msg("Assessment job failed")
		return
	}
	log.Info().Dur("duration", job.CompletedAt.Sub(started)).Msg("Assessment job completed")
}

// run converts a handler panic into a job failure.
func (q *Queue) run(ctx context.Context, job *jobs.AssessJob, handler jobs.JobHandler) (result *domain.Assessment, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("job handler panic: %v", r)
		}
	}()
	return handler(ctx, job)
}

func (q *Queue) finish(ctx context.Context, job *jobs.AssessJob, err error) {
	completed := q.now()
	job.CompletedAt = &completed
	if err != nil {
		job.Status = jobs.JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = jobs.JobStatusCompleted
		job.Error = ""
	}
	_ = q.save(ctx, job)
}

func (q *Queue) save(ctx context.Context, job *jobs.AssessJob) error {
	if q.store == nil {
		return nil
	}
	return q.store.SaveJob(ctx, job)
}

// Stop stops the queue, waits for in-flight jobs and fails any job still
// waiting in the buffer.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	for {
		select {
		case job := <-q.jobChan:
			q.finish(ctx, job, errors.New(stoppedMessage))
		default:
			return nil
		}
	}
}

// Close stops the queue without a deadline.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

// Ensure Queue implements both Publisher and Consumer interfaces.
var _ jobs.Publisher = (*Queue)(nil)
var _ jobs.Consumer = (*Queue)(nil)

package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/jobs"
)

// DefaultMaxJobs is how many jobs NewStore retains.
const DefaultMaxJobs = 1000

// Store is an in-memory implementation of JobStore.
// It is safe for concurrent use. Data is lost on restart.
type Store struct {
	mu      sync.RWMutex
	jobs    map[string]*jobs.AssessJob
	maxJobs int
}

// NewStore creates a new in-memory job store that keeps DefaultMaxJobs jobs.
func NewStore() *Store {
	return NewStoreWithLimit(DefaultMaxJobs)
}

// NewStoreWithLimit creates a store holding at most maxJobs jobs. Past the
// limit the oldest finished job is evicted; pending and running jobs are
// never evicted.
func NewStoreWithLimit(maxJobs int) *Store {
	return &Store{
		jobs:    make(map[string]*jobs.AssessJob),
		maxJobs: maxJobs,
	}
}

// SaveJob saves or updates a job. The statement body is dropped.
func (s *Store) SaveJob(ctx context.Context, job *jobs.AssessJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	jobCopy.Document = nil
	s.jobs[job.JobID] = &jobCopy

	if s.maxJobs > 0 && len(s.jobs) > s.maxJobs {
		s.evictOldestFinished()
	}
	return nil
}

// evictOldestFinished must be called with mu held.
func (s *Store) evictOldestFinished() {
	var oldest *jobs.AssessJob
	for _, job := range s.jobs {
		if job.Status != jobs.JobStatusCompleted && job.Status != jobs.JobStatusFailed {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = job
		}
	}
	if oldest != nil {
		delete(s.jobs, oldest.JobID)
	}
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.AssessJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs retrieves jobs newest first.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.AssessJob, error) {
	s.mu.RLock()
	result := make([]*jobs.AssessJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].JobID < result[j].JobID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.AssessJob{}, nil
		}
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Ensure Store implements JobStore interface.
var _ jobs.JobStore = (*Store)(nil)

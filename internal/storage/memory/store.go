package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
)

// JobStore is a mutex-guarded in-memory core.JobStore for tests and
// single-process runs. Jobs are copied on the way in and out so callers
// can never mutate stored state except through the transition methods.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*core.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[uuid.UUID]*core.Job)}
}

func (s *JobStore) Create(ctx context.Context, job *core.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*core.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, exists := s.jobs[id]
	if !exists {
		return nil, core.ErrNotFound
	}
	return cloneJob(job), nil
}

func (s *JobStore) List(ctx context.Context, filter core.JobFilter) ([]*core.Job, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []*core.Job
	for _, job := range s.jobs {
		if filter.State != nil && job.State != *filter.State {
			continue
		}
		if filter.Owner != "" && job.Owner != filter.Owner {
			continue
		}
		filtered = append(filtered, cloneJob(job))
	}

	// Newest submissions first.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	total := len(filtered)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return filtered[start:end], total, nil
}

func (s *JobStore) MarkRunning(ctx context.Context, id uuid.UUID, leaseExpiry time.Time) error {
	return s.transition(id, core.JobStatePending, func(job *core.Job) {
		job.State = core.JobStateRunning
		now := time.Now().UTC()
		job.StartedAt = &now
		expiry := leaseExpiry.UTC()
		job.LeaseExpiresAt = &expiry
	})
}

func (s *JobStore) MarkSucceeded(ctx context.Context, id uuid.UUID, resultRef string) error {
	return s.transition(id, core.JobStateRunning, func(job *core.Job) {
		job.State = core.JobStateSucceeded
		job.ResultRef = resultRef
		now := time.Now().UTC()
		job.FinishedAt = &now
		job.LeaseExpiresAt = nil
	})
}

func (s *JobStore) MarkFailed(ctx context.Context, id uuid.UUID, jobErr core.JobError) error {
	return s.transition(id, core.JobStateRunning, func(job *core.Job) {
		job.State = core.JobStateFailed
		job.Error = &jobErr
		now := time.Now().UTC()
		job.FinishedAt = &now
		job.LeaseExpiresAt = nil
	})
}

func (s *JobStore) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	return s.transition(id, core.JobStatePending, func(job *core.Job) {
		job.State = core.JobStateCancelled
		now := time.Now().UTC()
		job.FinishedAt = &now
	})
}

func (s *JobStore) MarkRequeued(ctx context.Context, id uuid.UUID) error {
	return s.transition(id, core.JobStateRunning, func(job *core.Job) {
		job.State = core.JobStatePending
		job.Attempt++
		job.StartedAt = nil
		job.LeaseExpiresAt = nil
	})
}

func (s *JobStore) ExpiredRunning(ctx context.Context, cutoff time.Time) ([]*core.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*core.Job
	for _, job := range s.jobs {
		if job.State != core.JobStateRunning {
			continue
		}
		if job.LeaseExpiresAt != nil && job.LeaseExpiresAt.Before(cutoff) {
			expired = append(expired, cloneJob(job))
		}
	}
	return expired, nil
}

func (s *JobStore) Ping(ctx context.Context) error {
	return nil
}

func (s *JobStore) transition(id uuid.UUID, from core.JobState, mutate func(*core.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return core.ErrNotFound
	}
	if job.State != from {
		return core.ErrConflict
	}
	mutate(job)
	return nil
}

func cloneJob(job *core.Job) *core.Job {
	clone := *job
	if job.Error != nil {
		jobErr := *job.Error
		clone.Error = &jobErr
	}
	if job.StartedAt != nil {
		t := *job.StartedAt
		clone.StartedAt = &t
	}
	if job.FinishedAt != nil {
		t := *job.FinishedAt
		clone.FinishedAt = &t
	}
	if job.LeaseExpiresAt != nil {
		t := *job.LeaseExpiresAt
		clone.LeaseExpiresAt = &t
	}
	return &clone
}

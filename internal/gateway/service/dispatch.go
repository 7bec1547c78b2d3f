package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/shared/logging"
)

// DispatchService is the request-facing job API. Submit never blocks on
// inference: it returns as soon as the job is durably enqueued, and status
// polling is the only way clients observe progress.
type DispatchService interface {
	Submit(ctx context.Context, owner string, params core.Params) (*core.Job, error)
	Status(ctx context.Context, id uuid.UUID) (*core.Job, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	ListJobs(ctx context.Context, filter core.JobFilter) ([]*core.Job, int, error)
}

type dispatchService struct {
	store core.JobStore
	queue core.JobQueue

	logger logging.Logger
}

func NewDispatchService(store core.JobStore, queue core.JobQueue, logger logging.Logger) DispatchService {
	return &dispatchService{
		store:  store,
		queue:  queue,
		logger: logger,
	}
}

// Submit validates params, creates the job in PENDING and enqueues it.
// Validation failures never create a job record or consume a queue slot.
// A store or queue failure here is a hard failure surfaced to the caller.
func (s *dispatchService) Submit(ctx context.Context, owner string, params core.Params) (*core.Job, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	job := &core.Job{
		ID:          uuid.New(),
		Owner:       owner,
		Params:      params,
		State:       core.JobStatePending,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		// The record exists but never reached the queue. Cancel it so the
		// client does not poll a job no worker will ever pick up, and
		// surface the hard failure.
		if markErr := s.store.MarkCancelled(ctx, job.ID); markErr != nil {
			s.logger.Error("Failed to cancel unenqueued job",
				"job_id", job.ID.String(), "error", markErr)
		}
		return nil, fmt.Errorf("enqueuing job: %w", err)
	}

	s.logger.Info("Job submitted",
		"job_id", job.ID.String(),
		"owner", owner,
		"steps", params.NumInferenceSteps,
		"size", fmt.Sprintf("%dx%d", params.Width, params.Height),
	)
	return job, nil
}

func (s *dispatchService) Status(ctx context.Context, id uuid.UUID) (*core.Job, error) {
	return s.store.Get(ctx, id)
}

// Cancel is honored only while the job is PENDING. A RUNNING job cannot be
// cancelled mid-inference; the store rejects the swap with ErrConflict.
func (s *dispatchService) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := s.store.MarkCancelled(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Job cancelled", "job_id", id.String())
	return nil
}

func (s *dispatchService) ListJobs(ctx context.Context, filter core.JobFilter) ([]*core.Job, int, error) {
	return s.store.List(ctx, filter)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/shared/logging"
)

// Reaper is the periodic sweep that resolves RUNNING jobs whose lease
// expired because their worker died mid-inference. Each expired job is
// either requeued at the head of the queue (attempt below the limit) or
// terminally failed with WORKER_LOST. The reaper is the sole timeout
// mechanism for in-flight work.
type Reaper struct {
	checkInterval time.Duration
	maxAttempts   int
	store         core.JobStore
	queue         core.JobQueue
	logger        logging.Logger

	// stalled holds ids that were swapped back to PENDING but whose queue
	// insert failed; each sweep retries them until the insert lands or the
	// job is resolved some other way. Touched only by the sweep goroutine.
	stalled map[uuid.UUID]struct{}
}

func NewReaper(
	checkInterval time.Duration,
	maxAttempts int,
	store core.JobStore,
	queue core.JobQueue,
	logger logging.Logger,
) *Reaper {
	return &Reaper{
		checkInterval: checkInterval,
		maxAttempts:   maxAttempts,
		store:         store,
		queue:         queue,
		logger:        logger,
		stalled:       make(map[uuid.UUID]struct{}),
	}
}

func (r *Reaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	r.retryStalled(ctx)

	expired, err := r.store.ExpiredRunning(ctx, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to list expired leases", "error", err)
		return
	}

	for _, job := range expired {
		r.resolve(ctx, job)
	}
}

func (r *Reaper) resolve(ctx context.Context, job *core.Job) {
	// Attempt counts inference attempts already consumed. At the limit the
	// job fails terminally; below it, the requeue path increments attempt.
	if job.Attempt >= r.maxAttempts {
		err := r.store.MarkFailed(ctx, job.ID, core.JobError{
			Kind:    core.ErrorKindWorkerLost,
			Message: "worker lease expired and retry limit reached",
		})
		if err != nil {
			// A concurrent completion or another sweep won the race.
			if errors.Is(err, core.ErrConflict) {
				r.logger.Debug("Expired job resolved concurrently", "job_id", job.ID.String())
				return
			}
			r.logger.Error("Failed to fail expired job", "job_id", job.ID.String(), "error", err)
			return
		}
		r.logger.Warn("Job failed after worker loss",
			"job_id", job.ID.String(), "attempt", job.Attempt)
		return
	}

	if err := r.store.MarkRequeued(ctx, job.ID); err != nil {
		if errors.Is(err, core.ErrConflict) {
			r.logger.Debug("Expired job resolved concurrently", "job_id", job.ID.String())
			return
		}
		r.logger.Error("Failed to requeue expired job", "job_id", job.ID.String(), "error", err)
		return
	}

	// Head insertion so recovered jobs run before newly arrived ones.
	if err := r.queue.RequeueFront(ctx, job.ID); err != nil {
		// The record is already PENDING; without the insert no worker will
		// ever see it again, so keep retrying on later sweeps.
		r.stalled[job.ID] = struct{}{}
		r.logger.Error("Failed to reinsert expired job into queue",
			"job_id", job.ID.String(), "error", err)
		return
	}

	r.logger.Info("Requeued job after worker loss",
		"job_id", job.ID.String(), "attempt", job.Attempt+1)
}

// retryStalled re-attempts queue inserts that failed on earlier sweeps. An
// id is dropped once the insert lands or the job has left PENDING.
func (r *Reaper) retryStalled(ctx context.Context) {
	for id := range r.stalled {
		job, err := r.store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				delete(r.stalled, id)
			}
			continue
		}
		if job.State != core.JobStatePending {
			delete(r.stalled, id)
			continue
		}
		if err := r.queue.RequeueFront(ctx, id); err != nil {
			r.logger.Error("Failed to reinsert stalled job into queue",
				"job_id", id.String(), "error", err)
			continue
		}
		delete(r.stalled, id)
		r.logger.Info("Reinserted stalled job into queue", "job_id", id.String())
	}
}

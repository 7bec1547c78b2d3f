package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	rqcore "github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/shared/logging"
	"github.com/mvelickovic/renderq/internal/worker/core"
)

// Config carries the per-device controller parameters.
type Config struct {
	DeviceID    int
	LeaseTTL    time.Duration
	PollTimeout time.Duration
	CallTimeout time.Duration
	MaxAttempts int
}

// Controller drains the pending queue for one GPU device. At most one job
// is in flight at any instant: the device slot is a capacity-1 lease held
// from claim until the inference call returns or is abandoned. The slot is
// process-local and never persisted — lease expiry in the store, not slot
// inspection, is the crash-recovery signal.
type Controller struct {
	cfg Config

	store      rqcore.JobStore
	queue      rqcore.JobQueue
	inferencer core.Inferencer
	results    core.ResultWriter

	slot chan struct{}

	logger logging.Logger
}

func NewController(
	cfg Config,
	store rqcore.JobStore,
	queue rqcore.JobQueue,
	inferencer core.Inferencer,
	results core.ResultWriter,
	logger logging.Logger,
) core.ControllerService {
	return &Controller{
		cfg:        cfg,
		store:      store,
		queue:      queue,
		inferencer: inferencer,
		results:    results,
		slot:       make(chan struct{}, 1),
		logger:     logger,
	}
}

// Run is the single dequeue loop for the device. It exits when ctx is
// cancelled; a job already claimed finishes its inference call first.
func (c *Controller) Run(ctx context.Context) error {
	const (
		minBackoff = 100 * time.Millisecond
		maxBackoff = 5 * time.Second
	)
	backoff := minBackoff

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := c.claimNext(ctx); err != nil {
			if errors.Is(err, rqcore.ErrQueueEmpty) || errors.Is(err, context.Canceled) {
				continue
			}
			c.logger.Error("Claim cycle failed", "device", c.cfg.DeviceID, "error", err)
			time.Sleep(backoff)
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff
	}
}

// claimNext performs one claim cycle: acquire the device slot, pop the next
// pending id, swap it to RUNNING and run inference. The slot is released
// only after the inference call returns or is abandoned.
func (c *Controller) claimNext(ctx context.Context) error {
	release, err := c.acquireSlot()
	if err != nil {
		// Structurally impossible with a single loop per device; seeing
		// this means two loops share a device.
		c.logger.Error("Device slot unexpectedly held", "device", c.cfg.DeviceID)
		return err
	}
	defer release()

	id, err := c.queue.Dequeue(ctx, c.cfg.PollTimeout)
	if err != nil {
		return err
	}

	job, err := c.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, rqcore.ErrNotFound) {
			// Queue entries are pointers, not truth; a dangling one is
			// dropped.
			c.logger.Warn("Dequeued unknown job", "job_id", id.String())
			return nil
		}
		c.restoreQueueEntry(ctx, id)
		return err
	}

	leaseExpiry := time.Now().UTC().Add(c.cfg.LeaseTTL)
	if err := c.store.MarkRunning(ctx, id, leaseExpiry); err != nil {
		if errors.Is(err, rqcore.ErrConflict) {
			// Cancelled (or otherwise resolved) between enqueue and claim.
			c.logger.Info("Skipping job no longer pending", "job_id", id.String())
			return nil
		}
		c.restoreQueueEntry(ctx, id)
		return err
	}

	c.logger.Info("Job claimed",
		"job_id", id.String(),
		"device", c.cfg.DeviceID,
		"attempt", job.Attempt,
		"prompt_len", len(job.Params.Prompt),
	)

	c.runInference(ctx, job)
	return nil
}

func (c *Controller) runInference(ctx context.Context, job *rqcore.Job) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	result, err := c.inferencer.Infer(callCtx, job)
	elapsed := time.Since(start)

	if err != nil {
		c.resolveFailure(ctx, job, err, elapsed)
		return
	}

	ref, err := c.results.Save(job.ID, result.Image)
	if err != nil {
		c.logger.Error("Failed to store result image",
			"job_id", job.ID.String(), "error", err)
		c.recoverOrFail(ctx, job, "result could not be stored")
		return
	}

	if err := c.completeJob(ctx, job.ID, ref); err != nil {
		return
	}

	c.logger.Info("Job succeeded",
		"job_id", job.ID.String(),
		"device", c.cfg.DeviceID,
		"used_seed", result.UsedSeed,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// completeJob writes the success outcome. If the compare-and-swap fails the
// outcome is discarded and logged: the reaper's decision wins, so a stale
// worker can never resurrect a job already handed to another attempt.
func (c *Controller) completeJob(ctx context.Context, id uuid.UUID, resultRef string) error {
	if err := c.store.MarkSucceeded(ctx, id, resultRef); err != nil {
		if errors.Is(err, rqcore.ErrConflict) {
			c.logger.Warn("Discarding stale success outcome", "job_id", id.String())
			return err
		}
		c.logger.Error("Failed to record success", "job_id", id.String(), "error", err)
		return err
	}
	return nil
}

func (c *Controller) resolveFailure(ctx context.Context, job *rqcore.Job, inferErr error, elapsed time.Duration) {
	var infErr *rqcore.InferenceError
	if errors.As(inferErr, &infErr) && !infErr.Kind.Retryable() {
		// The model itself rejected the job; retrying a deterministic
		// failure only wastes the device.
		c.failJob(ctx, job.ID, rqcore.JobError{
			Kind:    infErr.Kind,
			Message: infErr.Message,
		})
		c.logger.Warn("Job failed in model",
			"job_id", job.ID.String(),
			"kind", string(infErr.Kind),
			"duration_ms", elapsed.Milliseconds(),
		)
		return
	}

	// Deadline expiry, disconnects and other transport faults: the call may
	// or may not have produced an image, but partial completion is never
	// assumed.
	c.logger.Warn("Inference transport failure",
		"job_id", job.ID.String(),
		"device", c.cfg.DeviceID,
		"error", inferErr,
		"duration_ms", elapsed.Milliseconds(),
	)
	c.recoverOrFail(ctx, job, inferErr.Error())
}

// recoverOrFail applies the WorkerLost policy: requeue at the head with
// attempt+1 below the retry limit, terminal failure at the limit.
func (c *Controller) recoverOrFail(ctx context.Context, job *rqcore.Job, cause string) {
	if job.Attempt >= c.cfg.MaxAttempts {
		c.failJob(ctx, job.ID, rqcore.JobError{
			Kind:    rqcore.ErrorKindWorkerLost,
			Message: cause,
		})
		return
	}

	if err := c.store.MarkRequeued(ctx, job.ID); err != nil {
		if errors.Is(err, rqcore.ErrConflict) {
			c.logger.Warn("Discarding stale recovery outcome", "job_id", job.ID.String())
			return
		}
		c.logger.Error("Failed to requeue job", "job_id", job.ID.String(), "error", err)
		return
	}
	if err := c.queue.RequeueFront(ctx, job.ID); err != nil {
		c.logger.Error("Failed to reinsert job into queue",
			"job_id", job.ID.String(), "error", err)
		return
	}
	c.logger.Info("Job requeued for retry",
		"job_id", job.ID.String(), "attempt", job.Attempt+1)
}

func (c *Controller) failJob(ctx context.Context, id uuid.UUID, jobErr rqcore.JobError) {
	if err := c.store.MarkFailed(ctx, id, jobErr); err != nil {
		if errors.Is(err, rqcore.ErrConflict) {
			c.logger.Warn("Discarding stale failure outcome", "job_id", id.String())
			return
		}
		c.logger.Error("Failed to record failure", "job_id", id.String(), "error", err)
	}
}

// restoreQueueEntry puts a popped id back at the head after the claim cycle
// failed before the job reached RUNNING. The record is still PENDING, so a
// consumed entry would strand the job outside the queue where the lease
// sweep cannot see it.
func (c *Controller) restoreQueueEntry(ctx context.Context, id uuid.UUID) {
	if err := c.queue.RequeueFront(ctx, id); err != nil {
		c.logger.Error("Failed to restore queue entry",
			"job_id", id.String(), "error", err)
	}
}

func (c *Controller) acquireSlot() (func(), error) {
	select {
	case c.slot <- struct{}{}:
		return func() { <-c.slot }, nil
	default:
		return nil, rqcore.ErrDeviceBusy
	}
}

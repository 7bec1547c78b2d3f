package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/storage/memory"
)

func runJob(t *testing.T, store core.JobStore, leaseExpiry time.Time, attempt int) uuid.UUID {
	t.Helper()
	params := core.DefaultParams()
	params.Prompt = "a foggy harbor at sunrise"
	job := &core.Job{
		ID:          uuid.New(),
		Owner:       "alice",
		Params:      params,
		State:       core.JobStatePending,
		Attempt:     attempt,
		SubmittedAt: time.Now().UTC(),
	}
	ctx := context.Background()
	if err := store.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if err := store.MarkRunning(ctx, job.ID, leaseExpiry); err != nil {
		t.Fatalf("mark running: %v", err)
	}
	return job.ID
}

func TestReaper_RequeuesExpiredJob(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(-time.Minute), 0)

	reaper.sweep(ctx)

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.State != core.JobStatePending {
		t.Fatalf("Expected PENDING after sweep, got %s", got.State)
	}
	if got.Attempt != 1 {
		t.Errorf("Expected attempt 1, got %d", got.Attempt)
	}

	queued, err := queue.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Expected job back on the queue: %v", err)
	}
	if queued != id {
		t.Errorf("Expected %s on the queue, got %s", id, queued)
	}
}

func TestReaper_RecoveredJobsRunBeforeNewOnes(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	waiting := uuid.New()
	if err := queue.Enqueue(ctx, waiting); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	expired := runJob(t, store, time.Now().UTC().Add(-time.Minute), 0)

	reaper.sweep(ctx)

	first, err := queue.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if first != expired {
		t.Errorf("Expected recovered job %s first, got %s", expired, first)
	}
}

func TestReaper_FailsJobAtRetryLimit(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(-time.Minute), 3)

	reaper.sweep(ctx)

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.State != core.JobStateFailed {
		t.Fatalf("Expected FAILED at the retry limit, got %s", got.State)
	}
	if got.Error == nil || got.Error.Kind != core.ErrorKindWorkerLost {
		t.Errorf("Expected WORKER_LOST, got %+v", got.Error)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("Expected empty queue after terminal failure, got %d entries", n)
	}
}

func TestReaper_IgnoresLiveLeases(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(time.Hour), 0)

	reaper.sweep(ctx)

	got, _ := store.Get(ctx, id)
	if got.State != core.JobStateRunning {
		t.Errorf("Expected live lease untouched, got %s", got.State)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("Expected empty queue, got %d entries", n)
	}
}

// flakyRequeueQueue injects transient RequeueFront failures in front of a
// real queue.
type flakyRequeueQueue struct {
	*memory.Queue
	requeueFailures int
}

func (q *flakyRequeueQueue) RequeueFront(ctx context.Context, id uuid.UUID) error {
	if q.requeueFailures > 0 {
		q.requeueFailures--
		return errors.New("connection reset")
	}
	return q.Queue.RequeueFront(ctx, id)
}

// If the swap to PENDING lands but the queue insert fails, the job is
// invisible to both workers and the expiry listing. A later sweep must
// finish the insert.
func TestReaper_RetriesFailedQueueInsert(t *testing.T) {
	store := memory.NewJobStore()
	queue := &flakyRequeueQueue{Queue: memory.NewQueue(), requeueFailures: 1}
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(-time.Minute), 0)

	reaper.sweep(ctx)

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.State != core.JobStatePending {
		t.Fatalf("Expected PENDING after failed insert, got %s", got.State)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Fatalf("Expected empty queue after failed insert, got %d entries", n)
	}

	reaper.sweep(ctx)

	queued, err := queue.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Expected job on the queue after retry: %v", err)
	}
	if queued != id {
		t.Errorf("Expected %s on the queue, got %s", id, queued)
	}

	// The retry only re-inserts; it must not consume another attempt.
	got, _ = store.Get(ctx, id)
	if got.Attempt != 1 {
		t.Errorf("Expected attempt 1, got %d", got.Attempt)
	}
}

func TestReaper_DropsStalledJobResolvedElsewhere(t *testing.T) {
	store := memory.NewJobStore()
	queue := &flakyRequeueQueue{Queue: memory.NewQueue(), requeueFailures: 1}
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(-time.Minute), 0)

	reaper.sweep(ctx)

	// Resolved out of band before the retry lands.
	if err := store.MarkCancelled(ctx, id); err != nil {
		t.Fatalf("cancel job: %v", err)
	}

	reaper.sweep(ctx)

	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("Expected no insert for a resolved job, got %d entries", n)
	}
	got, _ := store.Get(ctx, id)
	if got.State != core.JobStateCancelled {
		t.Errorf("Expected CANCELLED to stick, got %s", got.State)
	}
}

// A worker can finish between the expiry listing and the swap; the sweep
// must treat the resulting conflict as someone else's win, not an error.
func TestReaper_ToleratesConcurrentResolution(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	reaper := NewReaper(time.Minute, 3, store, queue, &mockLogger{})
	ctx := context.Background()

	id := runJob(t, store, time.Now().UTC().Add(-time.Minute), 0)

	expired, err := store.ExpiredRunning(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("expired listing: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("Expected one expired job, got %d", len(expired))
	}

	// Late completion lands before the reaper resolves the job.
	if err := store.MarkSucceeded(ctx, id, "/images/late.jpg"); err != nil {
		t.Fatalf("mark succeeded: %v", err)
	}

	reaper.resolve(ctx, expired[0])

	got, _ := store.Get(ctx, id)
	if got.State != core.JobStateSucceeded {
		t.Errorf("Expected completion to stand, got %s", got.State)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("Expected empty queue, got %d entries", n)
	}
}

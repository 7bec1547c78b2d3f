package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobStore is the durable keyed record store for jobs. Every state
// transition is a compare-and-swap: the mutation applies only if the stored
// state matches the transition's source state, otherwise ErrConflict.
// Unknown ids yield ErrNotFound. Implementations must be safe for
// concurrent callers across processes.
type JobStore interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]*Job, int, error)

	// MarkRunning transitions PENDING -> RUNNING, stamping started_at and
	// the lease expiry.
	MarkRunning(ctx context.Context, id uuid.UUID, leaseExpiry time.Time) error

	// MarkSucceeded transitions RUNNING -> SUCCEEDED with the result
	// reference and stamps finished_at.
	MarkSucceeded(ctx context.Context, id uuid.UUID, resultRef string) error

	// MarkFailed transitions RUNNING -> FAILED with a structured cause and
	// stamps finished_at.
	MarkFailed(ctx context.Context, id uuid.UUID, jobErr JobError) error

	// MarkCancelled transitions PENDING -> CANCELLED.
	MarkCancelled(ctx context.Context, id uuid.UUID) error

	// MarkRequeued transitions RUNNING -> PENDING for crash recovery,
	// incrementing attempt and clearing the lease.
	MarkRequeued(ctx context.Context, id uuid.UUID) error

	// ExpiredRunning returns RUNNING jobs whose lease expired before cutoff.
	ExpiredRunning(ctx context.Context, cutoff time.Time) ([]*Job, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// JobQueue is the durable FIFO list of pending job ids. Entries are
// transient pointers into the JobStore, never a second source of truth.
// Dequeue is atomic: two callers never receive the same id.
type JobQueue interface {
	// Enqueue appends the id to the tail.
	Enqueue(ctx context.Context, id uuid.UUID) error

	// Dequeue pops the head, blocking up to timeout while the queue is
	// empty. ErrQueueEmpty when the timeout elapses with nothing to pop.
	Dequeue(ctx context.Context, timeout time.Duration) (uuid.UUID, error)

	// RequeueFront re-inserts an id at the head so crash-recovered jobs
	// run before newly arrived ones. A deliberate FIFO violation favoring
	// forward progress over fairness.
	RequeueFront(ctx context.Context, id uuid.UUID) error

	Len(ctx context.Context) (int, error)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
)

// Queue is an in-memory core.JobQueue. A single-slot signal channel wakes
// blocked dequeuers; the mutex makes each pop atomic so two callers never
// receive the same id.
type Queue struct {
	mu     sync.Mutex
	ids    []uuid.UUID
	signal chan struct{}
}

func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID) error {
	q.mu.Lock()
	q.ids = append(q.ids, id)
	q.mu.Unlock()
	q.wake()
	return nil
}

func (q *Queue) RequeueFront(ctx context.Context, id uuid.UUID) error {
	q.mu.Lock()
	q.ids = append([]uuid.UUID{id}, q.ids...)
	q.mu.Unlock()
	q.wake()
	return nil
}

func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (uuid.UUID, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if id, ok := q.pop(); ok {
			return id, nil
		}

		select {
		case <-ctx.Done():
			return uuid.Nil, ctx.Err()
		case <-timer.C:
			return uuid.Nil, core.ErrQueueEmpty
		case <-q.signal:
		}
	}
}

func (q *Queue) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids), nil
}

func (q *Queue) pop() (uuid.UUID, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ids) == 0 {
		return uuid.Nil, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	if len(q.ids) > 0 {
		// More work pending: keep other waiters awake.
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
	return id, true
}

func (q *Queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

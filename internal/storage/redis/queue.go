package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mvelickovic/renderq/internal/core"
)

// Queue implements core.JobQueue over a Redis List. LPUSH appends to the
// logical tail and BRPOP pops the head, so ordering is FIFO; RequeueFront
// uses RPUSH so a recovered id is the next one popped. BRPOP is atomic on
// the server, which gives the exactly-one-consumer-per-entry guarantee.
type Queue struct {
	client goredis.Cmdable
}

func NewQueue(client goredis.Cmdable) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := q.client.LPush(ctx, pendingKey, id.String()).Err(); err != nil {
		return fmt.Errorf("redis: enqueue: %w", err)
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (uuid.UUID, error) {
	res, err := q.client.BRPop(ctx, timeout, pendingKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return uuid.Nil, core.ErrQueueEmpty
		}
		return uuid.Nil, fmt.Errorf("redis: dequeue: %w", err)
	}

	// BRPop returns [key, value].
	id, err := uuid.Parse(res[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("redis: corrupt queue entry %q: %w", res[1], err)
	}
	return id, nil
}

func (q *Queue) RequeueFront(ctx context.Context, id uuid.UUID) error {
	if err := q.client.RPush(ctx, pendingKey, id.String()).Err(); err != nil {
		return fmt.Errorf("redis: requeue: %w", err)
	}
	return nil
}

func (q *Queue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, pendingKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: queue length: %w", err)
	}
	return int(n), nil
}

package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mvelickovic/renderq/internal/core"
)

func TestQueue_FIFO(t *testing.T) {
	queue := NewQueue()
	ctx := context.Background()

	first, second, third := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, queue.Enqueue(ctx, first))
	require.NoError(t, queue.Enqueue(ctx, second))
	require.NoError(t, queue.Enqueue(ctx, third))

	for _, want := range []uuid.UUID{first, second, third} {
		got, err := queue.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestQueue_RequeueFrontJumpsTheLine(t *testing.T) {
	queue := NewQueue()
	ctx := context.Background()

	waiting, recovered := uuid.New(), uuid.New()
	require.NoError(t, queue.Enqueue(ctx, waiting))
	require.NoError(t, queue.RequeueFront(ctx, recovered))

	got, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, recovered, got)

	got, err = queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, waiting, got)
}

func TestQueue_DequeueTimesOutWhenEmpty(t *testing.T) {
	queue := NewQueue()

	start := time.Now()
	_, err := queue.Dequeue(context.Background(), 50*time.Millisecond)
	require.ErrorIs(t, err, core.ErrQueueEmpty)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestQueue_DequeueHonorsContext(t *testing.T) {
	queue := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := queue.Dequeue(ctx, time.Minute)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not return after context cancellation")
	}
}

func TestQueue_DequeueUnblocksOnEnqueue(t *testing.T) {
	queue := NewQueue()
	ctx := context.Background()
	id := uuid.New()

	done := make(chan uuid.UUID, 1)
	go func() {
		got, err := queue.Dequeue(ctx, 5*time.Second)
		require.NoError(t, err)
		done <- got
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, queue.Enqueue(ctx, id))

	select {
	case got := <-done:
		require.Equal(t, id, got)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not observe the enqueue")
	}
}

// TestQueue_ConcurrentDequeuers checks the pop is atomic: many competing
// consumers drain the queue without ever receiving the same id twice.
func TestQueue_ConcurrentDequeuers(t *testing.T) {
	queue := NewQueue()
	ctx := context.Background()

	const jobs = 100
	expected := make(map[uuid.UUID]bool, jobs)
	for i := 0; i < jobs; i++ {
		id := uuid.New()
		expected[id] = true
		require.NoError(t, queue.Enqueue(ctx, id))
	}

	var mu sync.Mutex
	seen := make(map[uuid.UUID]int, jobs)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				id, err := queue.Dequeue(ctx, 100*time.Millisecond)
				if err != nil {
					return
				}
				mu.Lock()
				seen[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, jobs)
	for id, count := range seen {
		require.True(t, expected[id])
		require.Equal(t, 1, count, "id %s delivered %d times", id, count)
	}

	remaining, err := queue.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, remaining)
}

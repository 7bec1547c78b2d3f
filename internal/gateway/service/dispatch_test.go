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

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}
func (m *mockLogger) Fatal(msg string, args ...any) {}

// failingQueue rejects every enqueue; dequeues behave as empty.
type failingQueue struct{}

func (q *failingQueue) Enqueue(ctx context.Context, id uuid.UUID) error { return errors.New("broker down") }
func (q *failingQueue) RequeueFront(ctx context.Context, id uuid.UUID) error {
	return errors.New("broker down")
}
func (q *failingQueue) Dequeue(ctx context.Context, timeout time.Duration) (uuid.UUID, error) {
	return uuid.Nil, core.ErrQueueEmpty
}
func (q *failingQueue) Len(ctx context.Context) (int, error) { return 0, nil }

func validParams() core.Params {
	params := core.DefaultParams()
	params.Prompt = "an astronaut riding a horse"
	return params
}

func TestDispatchService_Submit(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	svc := NewDispatchService(store, queue, &mockLogger{})
	ctx := context.Background()

	job, err := svc.Submit(ctx, "alice", validParams())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.State != core.JobStatePending {
		t.Errorf("Expected PENDING, got %s", job.State)
	}
	if job.Owner != "alice" {
		t.Errorf("Expected owner alice, got %s", job.Owner)
	}
	if job.Attempt != 0 {
		t.Errorf("Expected attempt 0, got %d", job.Attempt)
	}

	stored, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Expected job record to exist: %v", err)
	}
	if stored.State != core.JobStatePending {
		t.Errorf("Expected stored PENDING, got %s", stored.State)
	}

	id, err := queue.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Expected job on the queue: %v", err)
	}
	if id != job.ID {
		t.Errorf("Expected %s on the queue, got %s", job.ID, id)
	}
}

func TestDispatchService_Submit_InvalidParams(t *testing.T) {
	store := memory.NewJobStore()
	queue := memory.NewQueue()
	svc := NewDispatchService(store, queue, &mockLogger{})
	ctx := context.Background()

	params := validParams()
	params.Prompt = "   "

	_, err := svc.Submit(ctx, "alice", params)
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Fatalf("Expected ErrInvalidParams, got %v", err)
	}

	// Rejected submissions leave no trace.
	jobs, total, err := store.List(ctx, core.JobFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(jobs) != 0 {
		t.Errorf("Expected no job records, got %d", total)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("Expected empty queue, got %d entries", n)
	}
}

func TestDispatchService_Submit_EnqueueFailureCancelsRecord(t *testing.T) {
	store := memory.NewJobStore()
	svc := NewDispatchService(store, &failingQueue{}, &mockLogger{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, "alice", validParams())
	if err == nil {
		t.Fatal("Expected submit to fail when the queue is down")
	}

	jobs, _, listErr := store.List(ctx, core.JobFilter{})
	if listErr != nil {
		t.Fatalf("List: %v", listErr)
	}
	if len(jobs) != 1 {
		t.Fatalf("Expected the orphaned record to remain, got %d", len(jobs))
	}
	if jobs[0].State != core.JobStateCancelled {
		t.Errorf("Expected orphaned record CANCELLED, got %s", jobs[0].State)
	}
}

func TestDispatchService_Status(t *testing.T) {
	store := memory.NewJobStore()
	svc := NewDispatchService(store, memory.NewQueue(), &mockLogger{})
	ctx := context.Background()

	job, err := svc.Submit(ctx, "alice", validParams())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := svc.Status(ctx, job.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got.ID != job.ID {
		t.Errorf("Expected %s, got %s", job.ID, got.ID)
	}

	if _, err := svc.Status(ctx, uuid.New()); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDispatchService_Cancel(t *testing.T) {
	store := memory.NewJobStore()
	svc := NewDispatchService(store, memory.NewQueue(), &mockLogger{})
	ctx := context.Background()

	t.Run("pending job", func(t *testing.T) {
		job, err := svc.Submit(ctx, "alice", validParams())
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if err := svc.Cancel(ctx, job.ID); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		got, _ := store.Get(ctx, job.ID)
		if got.State != core.JobStateCancelled {
			t.Errorf("Expected CANCELLED, got %s", got.State)
		}
	})

	t.Run("running job", func(t *testing.T) {
		job, err := svc.Submit(ctx, "alice", validParams())
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if err := store.MarkRunning(ctx, job.ID, time.Now().UTC().Add(time.Minute)); err != nil {
			t.Fatalf("MarkRunning: %v", err)
		}
		if err := svc.Cancel(ctx, job.ID); !errors.Is(err, core.ErrConflict) {
			t.Errorf("Expected ErrConflict for a running job, got %v", err)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		if err := svc.Cancel(ctx, uuid.New()); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

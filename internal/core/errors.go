package core

import "errors"

var (
	// ErrInvalidParams rejects a submission before any job is created.
	ErrInvalidParams = errors.New("invalid generation parameters")

	// ErrNotFound means the job id is unknown to the store.
	ErrNotFound = errors.New("job not found")

	// ErrConflict means a compare-and-swap precondition on the job state
	// did not match the stored value. The caller that detects it resolves
	// it; it is never surfaced to the submitting client as-is.
	ErrConflict = errors.New("job state conflict")

	// ErrQueueEmpty is returned by a blocking dequeue that timed out.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrDeviceBusy means the device slot is already held. The single
	// dequeue loop per device makes this structurally impossible;
	// observing it indicates a bug.
	ErrDeviceBusy = errors.New("device slot already held")
)

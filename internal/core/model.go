package core

import (
	"time"

	"github.com/google/uuid"
)

type JobState string

const (
	JobStatePending   JobState = "PENDING"
	JobStateRunning   JobState = "RUNNING"
	JobStateSucceeded JobState = "SUCCEEDED"
	JobStateFailed    JobState = "FAILED"
	JobStateCancelled JobState = "CANCELLED"
)

// Terminal reports whether no further transition is possible from the state.
func (s JobState) Terminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled:
		return true
	}
	return false
}

// ErrorKind is the machine-readable cause attached to a failed job.
type ErrorKind string

const (
	ErrorKindModelError        ErrorKind = "MODEL_ERROR"
	ErrorKindTimeout           ErrorKind = "TIMEOUT"
	ErrorKindResourceExhausted ErrorKind = "RESOURCE_EXHAUSTED"
	ErrorKindWorkerLost        ErrorKind = "WORKER_LOST"
)

// Retryable reports whether a failure of this kind warrants another
// inference attempt. Deterministic model failures are never retried;
// retrying them only burns the device slot.
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindTimeout || k == ErrorKindWorkerLost
}

type JobError struct {
	Kind    ErrorKind
	Message string
}

// Job is one image-generation request and its tracked lifecycle.
// Params are immutable once the job is enqueued; everything else is
// mutated only through the JobStore's compare-and-swap transitions.
type Job struct {
	ID     uuid.UUID
	Owner  string
	Params Params
	State  JobState

	// ResultRef is set only in SUCCEEDED; Error only in FAILED.
	ResultRef string
	Error     *JobError

	// Attempt counts inference attempts consumed so far. It is incremented
	// by the crash-recovery requeue path, never by a normal claim.
	Attempt int

	SubmittedAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time

	// LeaseExpiresAt is set while RUNNING; a running job past its lease
	// is considered abandoned by its worker.
	LeaseExpiresAt *time.Time
}

// InferenceResult is what a successful inference call produces.
type InferenceResult struct {
	Image    []byte
	UsedSeed int64
}

// InferenceError is a structured failure reported by the inference
// transport or the model-execution process itself.
type InferenceError struct {
	Kind    ErrorKind
	Message string
}

func (e *InferenceError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

type JobFilter struct {
	State  *JobState
	Owner  string
	Limit  int
	Offset int
}

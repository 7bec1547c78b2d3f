package core

import (
	"context"

	"github.com/google/uuid"

	rqcore "github.com/mvelickovic/renderq/internal/core"
)

// Inferencer is the synchronous call into the model-execution process.
// It blocks for the duration of model execution. Failures are reported as
// *core.InferenceError with a machine-readable kind; any other error is a
// transport-level fault and treated as a lost worker.
type Inferencer interface {
	Infer(ctx context.Context, job *rqcore.Job) (*rqcore.InferenceResult, error)
	Close() error
}

// ResultWriter persists a successful result and returns its reference.
type ResultWriter interface {
	Save(jobID uuid.UUID, data []byte) (string, error)
}

// ControllerService drains the pending queue for one device.
type ControllerService interface {
	Run(ctx context.Context) error
}

package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/shared/config"
	"github.com/mvelickovic/renderq/internal/shared/proto"
)

// InferenceClient is the gRPC implementation of the worker's Inferencer.
// One Infer call maps to one Inference.Generate RPC with the caller's
// deadline attached.
type InferenceClient struct {
	conn   *grpc.ClientConn
	client proto.InferenceClient
}

func NewInferenceClient(addr string, cfg config.InferenceGRPCConfig) (*InferenceClient, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(
			keepalive.ClientParameters{
				Time:                cfg.KeepaliveTime,
				Timeout:             cfg.KeepaliveTimeout,
				PermitWithoutStream: true,
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inference server: %w", err)
	}

	return &InferenceClient{
		conn:   conn,
		client: proto.NewInferenceClient(conn),
	}, nil
}

func (c *InferenceClient) Infer(ctx context.Context, job *core.Job) (*core.InferenceResult, error) {
	req := &proto.GenerateRequest{
		JobId:             job.ID.String(),
		Prompt:            job.Params.Prompt,
		GuidanceScale:     float32(job.Params.GuidanceScale),
		NumInferenceSteps: int32(job.Params.NumInferenceSteps),
		Width:             int32(job.Params.Width),
		Height:            int32(job.Params.Height),
		Seed:              job.Params.Seed,
	}

	resp, err := c.client.Generate(ctx, req)
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.Status != proto.GenerateResponse_SUCCESS {
		return nil, &core.InferenceError{
			Kind:    mapErrorKind(resp.ErrorKind),
			Message: resp.ErrorMessage,
		}
	}

	return &core.InferenceResult{
		Image:    resp.ImageData,
		UsedSeed: resp.UsedSeed,
	}, nil
}

func (c *InferenceClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// mapTransportError converts gRPC status codes into structured inference
// errors. Deadline expiry and disconnects stay retryable; a resource
// exhaustion reported by the model process is terminal.
func mapTransportError(err error) error {
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return &core.InferenceError{
			Kind:    core.ErrorKindTimeout,
			Message: "inference call deadline exceeded",
		}
	case codes.ResourceExhausted:
		return &core.InferenceError{
			Kind:    core.ErrorKindResourceExhausted,
			Message: err.Error(),
		}
	default:
		return &core.InferenceError{
			Kind:    core.ErrorKindWorkerLost,
			Message: err.Error(),
		}
	}
}

func mapErrorKind(kind proto.ErrorKind) core.ErrorKind {
	switch kind {
	case proto.ErrorKind_TIMEOUT:
		return core.ErrorKindTimeout
	case proto.ErrorKind_RESOURCE_EXHAUSTED:
		return core.ErrorKindResourceExhausted
	default:
		return core.ErrorKindModelError
	}
}

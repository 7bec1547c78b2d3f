package rest

import (
	"fmt"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/imagestore"
)

// toParams builds core.Params from a submission, filling omitted fields
// with their defaults. Bounds checking stays in core.Params.Validate.
func toParams(req SubmitJobRequest) core.Params {
	params := core.DefaultParams()
	params.Prompt = req.Prompt

	if req.GuidanceScale != nil {
		params.GuidanceScale = *req.GuidanceScale
	}
	if req.NumInferenceSteps != nil {
		params.NumInferenceSteps = *req.NumInferenceSteps
	}
	if req.Width != nil {
		params.Width = *req.Width
	}
	if req.Height != nil {
		params.Height = *req.Height
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	return params
}

func toSubmitResponse(job *core.Job) SubmitJobResponse {
	return SubmitJobResponse{
		JobID:       job.ID.String(),
		State:       string(job.State),
		SubmittedAt: job.SubmittedAt,
		Links: Links{
			Self: fmt.Sprintf("/api/jobs/%s", job.ID.String()),
		},
	}
}

func toGetJobResponse(job *core.Job) GetJobResponse {
	resp := GetJobResponse{
		JobID: job.ID.String(),
		Owner: job.Owner,
		State: string(job.State),
		Params: ParamsInfo{
			Prompt:            job.Params.Prompt,
			GuidanceScale:     job.Params.GuidanceScale,
			NumInferenceSteps: job.Params.NumInferenceSteps,
			Width:             job.Params.Width,
			Height:            job.Params.Height,
			Seed:              job.Params.Seed,
		},
		Attempt: job.Attempt,
		Timestamps: TimestampsInfo{
			Submitted: job.SubmittedAt,
			Started:   job.StartedAt,
			Finished:  job.FinishedAt,
		},
	}

	if job.ResultRef != "" {
		ref := job.ResultRef
		resp.ResultRef = &ref
	}
	if job.Error != nil {
		resp.Error = &ErrorInfo{
			Kind:    string(job.Error.Kind),
			Message: job.Error.Message,
		}
	}
	return resp
}

func toJobSummary(job *core.Job) JobSummary {
	return JobSummary{
		JobID:       job.ID.String(),
		State:       string(job.State),
		Prompt:      job.Params.Prompt,
		SubmittedAt: job.SubmittedAt,
		FinishedAt:  job.FinishedAt,
	}
}

func toImageInfo(img imagestore.Image) ImageInfo {
	return ImageInfo{
		ImageURL:  img.Ref,
		SizeBytes: img.SizeBytes,
		CreatedAt: img.CreatedAt,
	}
}

package rest

import (
	"time"
)

// SubmitJobRequest carries the generation parameters of a submission.
// Numeric fields are pointers so an omitted field takes its default rather
// than the zero value.
type SubmitJobRequest struct {
	Prompt            string   `json:"prompt"`
	GuidanceScale     *float64 `json:"guidance_scale,omitempty"`
	NumInferenceSteps *int     `json:"num_inference_steps,omitempty"`
	Width             *int     `json:"width,omitempty"`
	Height            *int     `json:"height,omitempty"`
	Seed              *int64   `json:"seed,omitempty"`
}

type SubmitJobResponse struct {
	JobID       string    `json:"job_id"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
	Links       Links     `json:"links"`
}

type Links struct {
	Self string `json:"self"`
}

type GetJobResponse struct {
	JobID      string         `json:"job_id"`
	Owner      string         `json:"owner,omitempty"`
	State      string         `json:"state"`
	Params     ParamsInfo     `json:"params"`
	ResultRef  *string        `json:"result_ref"`
	Error      *ErrorInfo     `json:"error"`
	Attempt    int            `json:"attempt"`
	Timestamps TimestampsInfo `json:"timestamps"`
}

type ParamsInfo struct {
	Prompt            string  `json:"prompt"`
	GuidanceScale     float64 `json:"guidance_scale"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	Seed              int64   `json:"seed"`
}

type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

type TimestampsInfo struct {
	Submitted time.Time  `json:"submitted"`
	Started   *time.Time `json:"started"`
	Finished  *time.Time `json:"finished"`
}

type ListJobsResponse struct {
	Jobs       []JobSummary `json:"jobs"`
	Total      int          `json:"total"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
	NextOffset *int         `json:"next_offset,omitempty"`
}

type JobSummary struct {
	JobID       string     `json:"job_id"`
	State       string     `json:"state"`
	Prompt      string     `json:"prompt"`
	SubmittedAt time.Time  `json:"submitted_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

type ListImagesResponse struct {
	Images []ImageInfo `json:"images"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

type ImageInfo struct {
	ImageURL  string    `json:"image_url"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

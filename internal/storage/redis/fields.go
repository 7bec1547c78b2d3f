package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
)

// jobToMap flattens a job into Redis hash fields. Optional timestamps and
// the error are written only when present; jobFromMap treats absence as nil.
func jobToMap(job *core.Job) map[string]any {
	fields := map[string]any{
		"id":                  job.ID.String(),
		"owner":               job.Owner,
		"state":               string(job.State),
		"prompt":              job.Params.Prompt,
		"guidance_scale":      strconv.FormatFloat(job.Params.GuidanceScale, 'f', -1, 64),
		"num_inference_steps": strconv.Itoa(job.Params.NumInferenceSteps),
		"width":               strconv.Itoa(job.Params.Width),
		"height":              strconv.Itoa(job.Params.Height),
		"seed":                strconv.FormatInt(job.Params.Seed, 10),
		"attempt":             strconv.Itoa(job.Attempt),
		"submitted_at":        job.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}
	if job.ResultRef != "" {
		fields["result_ref"] = job.ResultRef
	}
	if job.Error != nil {
		fields["error_kind"] = string(job.Error.Kind)
		fields["error_message"] = job.Error.Message
	}
	if job.StartedAt != nil {
		fields["started_at"] = job.StartedAt.UTC().Format(time.RFC3339Nano)
	}
	if job.FinishedAt != nil {
		fields["finished_at"] = job.FinishedAt.UTC().Format(time.RFC3339Nano)
	}
	if job.LeaseExpiresAt != nil {
		fields["lease_expires_at"] = job.LeaseExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

func jobFromMap(fields map[string]string) (*core.Job, error) {
	id, err := uuid.Parse(fields["id"])
	if err != nil {
		return nil, fmt.Errorf("redis: corrupt job id %q: %w", fields["id"], err)
	}

	guidance, _ := strconv.ParseFloat(fields["guidance_scale"], 64)
	steps, _ := strconv.Atoi(fields["num_inference_steps"])
	width, _ := strconv.Atoi(fields["width"])
	height, _ := strconv.Atoi(fields["height"])
	seed, _ := strconv.ParseInt(fields["seed"], 10, 64)
	attempt, _ := strconv.Atoi(fields["attempt"])

	submittedAt, err := time.Parse(time.RFC3339Nano, fields["submitted_at"])
	if err != nil {
		return nil, fmt.Errorf("redis: corrupt submitted_at %q: %w", fields["submitted_at"], err)
	}

	job := &core.Job{
		ID:    id,
		Owner: fields["owner"],
		State: core.JobState(fields["state"]),
		Params: core.Params{
			Prompt:            fields["prompt"],
			GuidanceScale:     guidance,
			NumInferenceSteps: steps,
			Width:             width,
			Height:            height,
			Seed:              seed,
		},
		ResultRef:   fields["result_ref"],
		Attempt:     attempt,
		SubmittedAt: submittedAt,
		StartedAt:   parseOptionalTime(fields["started_at"]),
		FinishedAt:  parseOptionalTime(fields["finished_at"]),
	}
	job.LeaseExpiresAt = parseOptionalTime(fields["lease_expires_at"])

	if kind, ok := fields["error_kind"]; ok && kind != "" {
		job.Error = &core.JobError{
			Kind:    core.ErrorKind(kind),
			Message: fields["error_message"],
		}
	}
	return job, nil
}

func parseOptionalTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	return &t
}

package core

import (
	"fmt"
	"strings"
)

// Generation parameter bounds and defaults. These track what the model
// pipeline accepts; submissions outside the bounds are rejected before a
// job record is created.
const (
	MinGuidanceScale = 1.0
	MaxGuidanceScale = 20.0
	MinSteps         = 10
	MaxSteps         = 50
	MinDimension     = 512
	MaxDimension     = 1536

	DefaultGuidanceScale = 7.0
	DefaultSteps         = 28
	DefaultDimension     = 1024

	// RandomSeed asks the worker to generate a seed.
	RandomSeed int64 = -1
)

// Params are the validated generation parameters of a job.
type Params struct {
	Prompt            string
	GuidanceScale     float64
	NumInferenceSteps int
	Width             int
	Height            int
	Seed              int64
}

// DefaultParams returns Params with every numeric field at its default and
// an empty prompt.
func DefaultParams() Params {
	return Params{
		GuidanceScale:     DefaultGuidanceScale,
		NumInferenceSteps: DefaultSteps,
		Width:             DefaultDimension,
		Height:            DefaultDimension,
		Seed:              RandomSeed,
	}
}

// Validate checks all bounds. Every violation is reported as
// ErrInvalidParams so callers can surface it verbatim to the client.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("%w: prompt must not be empty", ErrInvalidParams)
	}
	if p.GuidanceScale < MinGuidanceScale || p.GuidanceScale > MaxGuidanceScale {
		return fmt.Errorf("%w: guidance_scale %.2f outside [%.1f, %.1f]",
			ErrInvalidParams, p.GuidanceScale, MinGuidanceScale, MaxGuidanceScale)
	}
	if p.NumInferenceSteps < MinSteps || p.NumInferenceSteps > MaxSteps {
		return fmt.Errorf("%w: num_inference_steps %d outside [%d, %d]",
			ErrInvalidParams, p.NumInferenceSteps, MinSteps, MaxSteps)
	}
	if p.Width < MinDimension || p.Width > MaxDimension {
		return fmt.Errorf("%w: width %d outside [%d, %d]",
			ErrInvalidParams, p.Width, MinDimension, MaxDimension)
	}
	if p.Height < MinDimension || p.Height > MaxDimension {
		return fmt.Errorf("%w: height %d outside [%d, %d]",
			ErrInvalidParams, p.Height, MinDimension, MaxDimension)
	}
	return nil
}

// RandomizeSeed reports whether the worker should pick a seed.
func (p Params) RandomizeSeed() bool {
	return p.Seed < 0
}

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	require.Equal(t, DefaultGuidanceScale, p.GuidanceScale)
	require.Equal(t, DefaultSteps, p.NumInferenceSteps)
	require.Equal(t, DefaultDimension, p.Width)
	require.Equal(t, DefaultDimension, p.Height)
	require.Equal(t, RandomSeed, p.Seed)
	require.True(t, p.RandomizeSeed())
}

func TestParams_Validate(t *testing.T) {
	valid := DefaultParams()
	valid.Prompt = "a cat"

	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid defaults", func(p *Params) {}, false},
		{"valid bounds low", func(p *Params) {
			p.GuidanceScale = MinGuidanceScale
			p.NumInferenceSteps = MinSteps
			p.Width = MinDimension
			p.Height = MinDimension
		}, false},
		{"valid bounds high", func(p *Params) {
			p.GuidanceScale = MaxGuidanceScale
			p.NumInferenceSteps = MaxSteps
			p.Width = MaxDimension
			p.Height = MaxDimension
		}, false},
		{"empty prompt", func(p *Params) { p.Prompt = "" }, true},
		{"whitespace prompt", func(p *Params) { p.Prompt = "   " }, true},
		{"guidance too low", func(p *Params) { p.GuidanceScale = 0.5 }, true},
		{"guidance too high", func(p *Params) { p.GuidanceScale = 25 }, true},
		{"too few steps", func(p *Params) { p.NumInferenceSteps = 5 }, true},
		{"too many steps", func(p *Params) { p.NumInferenceSteps = 100 }, true},
		{"width too small", func(p *Params) { p.Width = 256 }, true},
		{"width too large", func(p *Params) { p.Width = 2048 }, true},
		{"height too small", func(p *Params) { p.Height = 64 }, true},
		{"height too large", func(p *Params) { p.Height = 4096 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidParams))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParams_RandomizeSeed(t *testing.T) {
	p := DefaultParams()
	p.Seed = 42
	require.False(t, p.RandomizeSeed())

	p.Seed = -1
	require.True(t, p.RandomizeSeed())

	p.Seed = 0
	require.False(t, p.RandomizeSeed())
}

func TestJobState_Terminal(t *testing.T) {
	require.False(t, JobStatePending.Terminal())
	require.False(t, JobStateRunning.Terminal())
	require.True(t, JobStateSucceeded.Terminal())
	require.True(t, JobStateFailed.Terminal())
	require.True(t, JobStateCancelled.Terminal())
}

func TestErrorKind_Retryable(t *testing.T) {
	require.True(t, ErrorKindTimeout.Retryable())
	require.True(t, ErrorKindWorkerLost.Retryable())
	require.False(t, ErrorKindModelError.Retryable())
	require.False(t, ErrorKindResourceExhausted.Retryable())
}

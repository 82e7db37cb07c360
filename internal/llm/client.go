// Package llm wraps the hosted text-generation service behind a small
// interface so call sites can be tested with a fake. The real implementation
// talks to Gemini; every consumer must have a defined fallback because the
// service is treated as unreliable.
package llm

import (
	"context"
	"errors"
)

// Client defines the minimal interface goaltrack uses to call the
// generation service.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrUnavailable marks transport, auth, or quota failures of the generation
// service. Boundaries match on it with errors.Is to apply their fallback
// policy (fallback schedule, accept-by-default grading, canned chat reply).
var ErrUnavailable = errors.New("generation service unavailable")

// disabled is the Client used when no API key is configured. Every call
// fails with ErrUnavailable so the callers' fallback paths engage.
type disabled struct{}

// NewDisabled returns a Client for running without an API key.
func NewDisabled() Client { return disabled{} }

func (disabled) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (disabled) CompleteWithSystem(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}

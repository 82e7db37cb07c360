package llm

import (
	"context"
	"sync"
)

// Fake is a scripted Client for tests. Responses are returned in order;
// when the script runs out the last entry repeats. A non-nil Err is
// returned for every call instead.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	calls     int
	Prompts   []string
	Systems   []string
}

// Complete implements Client.
func (f *Fake) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem implements Client.
func (f *Fake) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Prompts = append(f.Prompts, userPrompt)
	f.Systems = append(f.Systems, systemPrompt)

	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrUnavailable
	}
	idx := f.calls
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	f.calls++
	return f.Responses[idx], nil
}

// CallCount returns how many completions were requested.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

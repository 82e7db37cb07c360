package validation

import (
	"context"
	"testing"

	"goaltrack/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrader_AcceptsOnServiceFailure(t *testing.T) {
	g := NewGrader(&llm.Fake{Err: llm.ErrUnavailable})

	result := g.Grade(context.Background(), "Learn recursion", "it calls itself")

	assert.True(t, result.IsValid, "outage must auto-accept")
	assert.Contains(t, result.Feedback, "automatically accepted")
	assert.Equal(t, []string{"self-reported completion"}, result.ConceptsUnderstood)
}

func TestGrader_PassesTaskAndExplanation(t *testing.T) {
	fake := &llm.Fake{Responses: []string{`{"isValid":true,"feedback":"ok"}`}}
	g := NewGrader(fake)

	result := g.Grade(context.Background(), "Learn recursion", "a function calling itself")

	assert.True(t, result.IsValid)
	require.Len(t, fake.Prompts, 1)
	assert.Contains(t, fake.Prompts[0], `"Learn recursion"`)
	assert.Contains(t, fake.Prompts[0], `"a function calling itself"`)
}

func TestGrader_RejectsOnStructuredReject(t *testing.T) {
	fake := &llm.Fake{Responses: []string{`{"isValid":false,"feedback":"explain base cases","conceptsMissing":["base case"]}`}}
	g := NewGrader(fake)

	result := g.Grade(context.Background(), "Learn recursion", "loops but fancier")

	assert.False(t, result.IsValid)
	assert.Equal(t, "explain base cases", result.Feedback)
	assert.Equal(t, []string{"base case"}, result.ConceptsMissing)
}

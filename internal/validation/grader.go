package validation

import (
	"context"
	"fmt"

	"goaltrack/internal/llm"
	"goaltrack/internal/logging"
	"goaltrack/internal/types"
)

const gradingPromptFmt = `You are evaluating whether a student has understood a learning task.

The task was: %q

The student's explanation is: %q

Evaluate the student's explanation and determine if they demonstrate understanding of the key concepts.
First analyze what key concepts should be understood from the task.
Then check if the student's explanation addresses these concepts.

Return your evaluation in JSON format with the following structure:
{
  "isValid": true/false,
  "feedback": "Your detailed feedback here",
  "conceptsUnderstood": ["list", "of", "concepts", "understood"],
  "conceptsMissing": ["list", "of", "concepts", "missing"]
}`

// Grader asks the generation service to grade an explanation against its
// task. The leniency policy is deliberate: when the service cannot be
// reached the submission is accepted, never rejected, so an outage can't
// block a user's progress.
type Grader struct {
	client llm.Client
}

// NewGrader creates a Grader backed by the given client.
func NewGrader(client llm.Client) *Grader {
	return &Grader{client: client}
}

// Grade returns the interpreted validation result for an explanation of
// taskText. Service failure yields accept-by-default with feedback stating
// so; an unparseable grading response goes through the Interpret heuristic.
func (g *Grader) Grade(ctx context.Context, taskText, explanation string) types.ValidationResult {
	raw, err := g.client.Complete(ctx, fmt.Sprintf(gradingPromptFmt, taskText, explanation))
	if err != nil {
		logging.Validation("grading service unavailable, auto-accepting: %v", err)
		return types.ValidationResult{
			IsValid:            true,
			Feedback:           "AI validation service is currently unavailable. Your response has been automatically accepted.",
			ConceptsUnderstood: []string{"self-reported completion"},
			ConceptsMissing:    []string{},
		}
	}

	result := Interpret(raw)
	logging.Validation("graded explanation: valid=%v feedback_len=%d", result.IsValid, len(result.Feedback))
	return result
}

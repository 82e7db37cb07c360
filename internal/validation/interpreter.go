// Package validation grades a user's free-text concept explanation through
// the generation service and interprets the grading response.
package validation

import (
	"encoding/json"
	"strings"

	"goaltrack/internal/types"
)

// acceptMarkers trigger the heuristic accept when the grading response is
// not parseable JSON.
var acceptMarkers = []string{
	"correct",
	"demonstrates understanding",
	"understood",
}

// Interpret derives a validity decision from a raw grading response.
//
// The response is first decoded as the structured record the grading prompt
// asks for. Models routinely wrap JSON in markdown fences, so fences are
// stripped before decoding. When decoding fails, a substring heuristic over
// the lowercased text decides validity and the raw text becomes the
// feedback; both concept sets stay empty.
func Interpret(raw string) types.ValidationResult {
	text := strings.TrimSpace(raw)

	var result types.ValidationResult
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err == nil {
		if result.Feedback == "" {
			result.Feedback = text
		}
		return result
	}

	lower := strings.ToLower(text)
	for _, marker := range acceptMarkers {
		if strings.Contains(lower, marker) {
			return types.ValidationResult{IsValid: true, Feedback: text}
		}
	}
	return types.ValidationResult{IsValid: false, Feedback: text}
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

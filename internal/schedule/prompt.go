package schedule

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an AI schedule generator for a learning goal tracking app.
Create a detailed daily schedule between the given dates that will help achieve the learning goal.
Break down the goal into logical, achievable daily tasks.
Each task should build upon previous learning.
Format each task exactly as: YYYY-MM-DD: [specific task description]`

// BuildPrompt assembles the schedule-generation prompt from goal fields.
// Dates are the YYYY-MM-DD strings stored on the goal.
func BuildPrompt(title, description, startDate, endDate string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a learning schedule between %s and %s for: %s\n", startDate, endDate, title)
	if description != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", description)
	}
	b.WriteString(`
Break down the learning into daily tasks that:
1. Start with fundamentals
2. Gradually increase in complexity
3. Include practical exercises
4. Are specific and actionable

Format each task exactly as:
YYYY-MM-DD: Task description

Example:
2025-02-27: Complete Python basics tutorial and write first script
2025-02-28: Practice Python functions and basic data structures
`)

	return b.String()
}

// Package schedule turns AI-generated free text into dated task records and
// provides the deterministic fallback used when generation is unavailable.
package schedule

import (
	"errors"
	"regexp"
	"strings"

	"goaltrack/internal/types"
)

// ErrEmptySchedule is returned when no valid task lines survive parsing.
// Callers treat it exactly like an unavailable generation service and
// substitute the fallback schedule.
var ErrEmptySchedule = errors.New("no valid tasks in schedule text")

// dateRe matches the fixed-width YYYY-MM-DD shape. No calendar validation:
// 2024-13-45 passes, 2024-2-5 does not.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parse extracts dated task records from raw generation output.
//
// Each line is expected as "YYYY-MM-DD: task description". Lines that are
// blank or carry no colon are dropped silently. The task text keeps any
// colons after the first one ("2024-02-26: Read Ch.3: Intro" keeps
// "Read Ch.3: Intro"). Input order and duplicate dates are preserved.
func Parse(raw string) ([]types.TaskRecord, error) {
	var records []types.TaskRecord

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}

		parts := strings.Split(line, ":")
		date := strings.TrimSpace(parts[0])
		task := strings.TrimSpace(strings.Join(parts[1:], ":"))

		if !dateRe.MatchString(date) {
			continue
		}

		records = append(records, types.TaskRecord{Date: date, Task: task})
	}

	if len(records) == 0 {
		return nil, ErrEmptySchedule
	}
	return records, nil
}

package schedule

import (
	"time"

	"goaltrack/internal/types"
)

// fallbackPool is the fixed ordered set of generic task descriptions used
// when generation fails. The fallback never emits more records than the
// pool has entries, even for longer date ranges; longer goals get a
// truncated generic schedule rather than a padded one.
var fallbackPool = []string{
	"Research basics and fundamental concepts",
	"Complete introductory tutorials",
	"Practice basic exercises",
	"Review previous material and start intermediate concepts",
	"Work on a small project applying what you've learned",
	"Dive into advanced topics",
	"Complete a challenge project",
	"Review all material and identify knowledge gaps",
}

// Fallback deterministically produces a dated task list for the goal's date
// range. One record per day starting at start, capped at the pool length.
// start == end yields one record. end before start yields nothing; callers
// validate ordering upstream.
func Fallback(start, end time.Time, goalTitle string) []types.TaskRecord {
	daysCount := int(end.Sub(start).Hours()/24) + 1
	if daysCount < 1 {
		return nil
	}

	records := make([]types.TaskRecord, 0, len(fallbackPool))
	current := start
	for i := 0; i < daysCount && i < len(fallbackPool); i++ {
		records = append(records, types.TaskRecord{
			Date: current.Format("2006-01-02"),
			Task: fallbackPool[i] + " related to " + goalTitle,
		})
		current = current.AddDate(0, 0, 1)
	}
	return records
}

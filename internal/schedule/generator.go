package schedule

import (
	"context"
	"time"

	"goaltrack/internal/llm"
	"goaltrack/internal/logging"
	"goaltrack/internal/types"
)

// Source identifies where a generated schedule came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Generator produces a schedule for a goal, preferring the generation
// service and degrading to the deterministic fallback. The client is
// injected so tests can script it.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator backed by the given client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate returns a schedule for the goal's date range. A failed service
// call, an empty response, and an unparseable response are all recovered
// the same way: the fallback schedule. Generate never returns zero records
// for a valid range.
func (g *Generator) Generate(ctx context.Context, title, description string, start, end time.Time) ([]types.TaskRecord, Source) {
	timer := logging.StartTimer(logging.CategorySchedule, "Generate")
	defer timer.Stop()

	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")

	raw, err := g.client.CompleteWithSystem(ctx, systemPrompt, BuildPrompt(title, description, startDate, endDate))
	if err != nil {
		logging.Schedule("generation failed, using fallback: %v", err)
		return Fallback(start, end, title), SourceFallback
	}

	records, err := Parse(raw)
	if err != nil {
		logging.Schedule("response parsed to zero tasks, using fallback")
		return Fallback(start, end, title), SourceFallback
	}

	logging.ScheduleDebug("parsed %d tasks from generation response", len(records))
	return records, SourceAI
}

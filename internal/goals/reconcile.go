package goals

import (
	"fmt"

	"goaltrack/internal/types"
)

// PartialFailure reports that reconciliation persisted some but not all
// task records. The persisted prefix is carried so the caller can surface
// what exists instead of silently orphaning the goal.
type PartialFailure struct {
	Persisted []types.Task
	Total     int
	Err       error
}

func (p *PartialFailure) Error() string {
	return fmt.Sprintf("persisted %d of %d tasks: %v", len(p.Persisted), p.Total, p.Err)
}

func (p *PartialFailure) Unwrap() error {
	return p.Err
}

// reconcile persists each record, in input order, as a task owned by the
// goal. Persistence is sequential and not transactional: a failure at
// record k leaves records 0..k-1 in place and returns a *PartialFailure
// (total failure is the k == 0 case, with an empty Persisted slice).
func (s *Service) reconcile(goalID int64, records []types.TaskRecord) ([]types.Task, error) {
	tasks := make([]types.Task, 0, len(records))
	for i, rec := range records {
		task := types.Task{
			GoalID:      goalID,
			Date:        rec.Date,
			Task:        rec.Task,
			IsCompleted: false,
		}
		if err := s.store.CreateTask(&task); err != nil {
			return nil, &PartialFailure{
				Persisted: tasks,
				Total:     len(records),
				Err:       fmt.Errorf("task %d: %w", i, err),
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

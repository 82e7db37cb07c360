// Package goals implements the goal lifecycle: creation with AI schedule
// generation, task reconciliation, manual task entry, and ownership checks.
package goals

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"goaltrack/internal/logging"
	"goaltrack/internal/schedule"
	"goaltrack/internal/types"
)

var (
	// ErrForbidden means the goal exists but belongs to another user.
	ErrForbidden = errors.New("goal belongs to another user")
	// ErrInvalidDate means a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Store is the persistence surface the service needs. *store.Store
// satisfies it; tests substitute fault-injecting fakes.
type Store interface {
	CreateGoal(*types.Goal) error
	GetGoal(int64) (*types.Goal, error)
	GetGoalsByUser(int64) ([]types.Goal, error)
	DeleteGoal(int64) error
	CreateTask(*types.Task) error
	GetTask(int64) (*types.Task, error)
	GetTasksByGoal(int64) ([]types.Task, error)
	CompleteTask(id int64, notes string) error
}

// ScheduleStatus reports how a goal's schedule came to be.
type ScheduleStatus string

const (
	// StatusAI: schedule parsed from the generation service.
	StatusAI ScheduleStatus = "ai"
	// StatusFallback: generation failed or parsed empty; generic schedule used.
	StatusFallback ScheduleStatus = "fallback"
	// StatusFailed: the goal exists but task persistence failed part way.
	// The goal is deliberately not rolled back; the response carries
	// whatever tasks were persisted and the user can retry or add tasks
	// manually.
	StatusFailed ScheduleStatus = "failed"
)

// CreateResult is the outcome of goal creation.
type CreateResult struct {
	Goal           *types.Goal    `json:"goal"`
	Tasks          []types.Task   `json:"tasks"`
	ScheduleStatus ScheduleStatus `json:"schedule_status"`
}

// Service orchestrates goal and task operations over the store and the
// schedule generator.
type Service struct {
	store     Store
	generator *schedule.Generator
}

// NewService creates a goal service.
func NewService(store Store, generator *schedule.Generator) *Service {
	return &Service{store: store, generator: generator}
}

// Create persists a goal, generates its schedule (AI first, fallback on any
// generation failure), and reconciles the records into tasks. The goal
// itself is never rolled back once created: a persistence failure after
// that point is reported via ScheduleStatus "failed" with the persisted
// prefix included.
func (s *Service) Create(ctx context.Context, userID int64, title, description, startDate, endDate string) (*CreateResult, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	goal := &types.Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := s.store.CreateGoal(goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	logging.Schedule("goal %d created, generating schedule", goal.ID)

	records, source := s.generator.Generate(ctx, title, description, start, end)

	tasks, err := s.reconcile(goal.ID, records)
	if err != nil {
		var partial *PartialFailure
		if errors.As(err, &partial) {
			logging.ServerError("goal %d: schedule persistence failed after %d tasks: %v",
				goal.ID, len(partial.Persisted), partial.Err)
			return &CreateResult{Goal: goal, Tasks: partial.Persisted, ScheduleStatus: StatusFailed}, nil
		}
		return nil, err
	}

	status := StatusAI
	if source == schedule.SourceFallback {
		status = StatusFallback
	}
	return &CreateResult{Goal: goal, Tasks: tasks, ScheduleStatus: status}, nil
}

// ListGoals returns the user's goals.
func (s *Service) ListGoals(userID int64) ([]types.Goal, error) {
	return s.store.GetGoalsByUser(userID)
}

// ownedGoal loads a goal and checks ownership.
func (s *Service) ownedGoal(userID, goalID int64) (*types.Goal, error) {
	goal, err := s.store.GetGoal(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}
	return goal, nil
}

// Tasks returns the tasks for a goal the user owns.
func (s *Service) Tasks(userID, goalID int64) ([]types.Task, error) {
	if _, err := s.ownedGoal(userID, goalID); err != nil {
		return nil, err
	}
	return s.store.GetTasksByGoal(goalID)
}

// AddTask creates one manual task under a goal the user owns.
func (s *Service) AddTask(userID, goalID int64, date, text string) (*types.Task, error) {
	if _, err := s.ownedGoal(userID, goalID); err != nil {
		return nil, err
	}
	if !dateRe.MatchString(date) {
		return nil, ErrInvalidDate
	}
	task := &types.Task{GoalID: goalID, Date: date, Task: text}
	if err := s.store.CreateTask(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// AddTasks creates manual tasks in bulk. Every record is validated before
// any is persisted; persistence itself follows the same sequential
// at-least-partial-success contract as reconcile.
func (s *Service) AddTasks(userID, goalID int64, records []types.TaskRecord) ([]types.Task, error) {
	if _, err := s.ownedGoal(userID, goalID); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if !dateRe.MatchString(rec.Date) {
			return nil, ErrInvalidDate
		}
	}
	return s.reconcile(goalID, records)
}

// TaskForUser loads a task and checks that its goal belongs to the user.
func (s *Service) TaskForUser(userID, taskID int64) (*types.Task, error) {
	task, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedGoal(userID, task.GoalID); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks a task done with the user's explanation as notes.
func (s *Service) Complete(userID, taskID int64, notes string) error {
	if _, err := s.TaskForUser(userID, taskID); err != nil {
		return err
	}
	return s.store.CompleteTask(taskID, notes)
}

// Delete removes a goal the user owns; tasks cascade at the store layer.
func (s *Service) Delete(userID, goalID int64) error {
	if _, err := s.ownedGoal(userID, goalID); err != nil {
		return err
	}
	return s.store.DeleteGoal(goalID)
}

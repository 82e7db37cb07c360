package store

import (
	"database/sql"
	"errors"
	"fmt"

	"goaltrack/internal/types"
)

// CreateTask inserts a new task and fills in its ID.
func (s *Store) CreateTask(t *types.Task) error {
	res, err := s.db.Exec(
		"INSERT INTO tasks (goal_id, date, task, is_completed, completion_notes) VALUES (?, ?, ?, ?, ?)",
		t.GoalID, t.Date, t.Task, t.IsCompleted, t.CompletionNotes,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID = id
	return nil
}

// GetTask returns the task with the given id.
func (s *Store) GetTask(id int64) (*types.Task, error) {
	var t types.Task
	err := s.db.QueryRow(
		"SELECT id, goal_id, date, task, is_completed, completion_notes FROM tasks WHERE id = ?", id,
	).Scan(&t.ID, &t.GoalID, &t.Date, &t.Task, &t.IsCompleted, &t.CompletionNotes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// GetTasksByGoal returns the goal's tasks in insertion order.
func (s *Store) GetTasksByGoal(goalID int64) ([]types.Task, error) {
	return s.queryTasks(
		"SELECT id, goal_id, date, task, is_completed, completion_notes FROM tasks WHERE goal_id = ? ORDER BY id", goalID,
	)
}

// GetTasksByUser returns every task under every goal of the user, in
// insertion order. Used by the stats derivation.
func (s *Store) GetTasksByUser(userID int64) ([]types.Task, error) {
	return s.queryTasks(
		`SELECT t.id, t.goal_id, t.date, t.task, t.is_completed, t.completion_notes
		 FROM tasks t JOIN goals g ON t.goal_id = g.id
		 WHERE g.user_id = ? ORDER BY t.id`, userID,
	)
}

func (s *Store) queryTasks(query string, args ...any) ([]types.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		var t types.Task
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Date, &t.Task, &t.IsCompleted, &t.CompletionNotes); err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTask marks a task completed and stores the validated explanation.
func (s *Store) CompleteTask(id int64, notes string) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET is_completed = 1, completion_notes = ? WHERE id = ?", notes, id,
	)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goaltrack/internal/types"
)

// CreateGoal inserts a new goal and fills in its ID and creation time.
func (s *Store) CreateGoal(g *types.Goal) error {
	g.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := s.db.Exec(
		"INSERT INTO goals (user_id, title, description, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		g.UserID, g.Title, g.Description, g.StartDate, g.EndDate, g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	g.ID = id
	return nil
}

// GetGoal returns the goal with the given id.
func (s *Store) GetGoal(id int64) (*types.Goal, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, title, description, start_date, end_date, created_at FROM goals WHERE id = ?", id,
	)
	g, err := scanGoal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

// GetGoalsByUser returns the user's goals, oldest first.
func (s *Store) GetGoalsByUser(userID int64) ([]types.Goal, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, description, start_date, end_date, created_at FROM goals WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []types.Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list goals: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal; its tasks cascade.
func (s *Store) DeleteGoal(id int64) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGoal(scan func(...any) error) (*types.Goal, error) {
	var (
		g         types.Goal
		createdAt string
	)
	if err := scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.StartDate, &g.EndDate, &createdAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	g.CreatedAt = ts
	return &g, nil
}

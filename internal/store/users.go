package store

import (
	"database/sql"
	"errors"
	"fmt"

	"goaltrack/internal/types"
)

// CreateUser inserts a new user and fills in its ID.
func (s *Store) CreateUser(u *types.User) error {
	res, err := s.db.Exec(
		"INSERT INTO users (username, password, email) VALUES (?, ?, ?)",
		u.Username, u.Password, u.Email,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(id int64) (*types.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, password, email, streak, active_days, missing_days FROM users WHERE id = ?", id,
	))
}

// GetUserByUsername returns the user with the given username.
func (s *Store) GetUserByUsername(username string) (*types.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, password, email, streak, active_days, missing_days FROM users WHERE username = ?", username,
	))
}

func (s *Store) scanUser(row *sql.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Streak, &u.ActiveDays, &u.MissingDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// UpdateUserStats overwrites the cached dashboard counters.
func (s *Store) UpdateUserStats(id int64, streak, activeDays, missingDays int) error {
	res, err := s.db.Exec(
		"UPDATE users SET streak = ?, active_days = ?, missing_days = ? WHERE id = ?",
		streak, activeDays, missingDays, id,
	)
	if err != nil {
		return fmt.Errorf("update user stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user stats: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user; goals, tasks, and sessions cascade.
func (s *Store) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

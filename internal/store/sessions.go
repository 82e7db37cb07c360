package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSession stores a session token hash with its expiry.
func (s *Store) CreateSession(tokenHash string, userID int64, expiresAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO sessions (token_hash, user_id, expires_at) VALUES (?, ?, ?)",
		tokenHash, userID, expiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession resolves a token hash to its user id. Expired sessions are
// deleted on lookup and reported as ErrNotFound.
func (s *Store) GetSession(tokenHash string, now time.Time) (int64, error) {
	var (
		userID    int64
		expiresAt string
	)
	err := s.db.QueryRow(
		"SELECT user_id, expires_at FROM sessions WHERE token_hash = ?", tokenHash,
	).Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	exp, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return 0, fmt.Errorf("parse session expiry: %w", err)
	}
	if now.After(exp) {
		_ = s.DeleteSession(tokenHash)
		return 0, ErrNotFound
	}
	return userID, nil
}

// DeleteSession removes a session (logout).
func (s *Store) DeleteSession(tokenHash string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token_hash = ?", tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions clears out sessions past their expiry.
func (s *Store) DeleteExpiredSessions(now time.Time) error {
	if _, err := s.db.Exec(
		"DELETE FROM sessions WHERE expires_at < ?", now.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

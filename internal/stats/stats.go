// Package stats derives consistency figures from a user's task history.
//
// A day is "active" when at least one task due that day is completed,
// "missing" when tasks were due but none completed and the day is already
// past. Days with nothing due are neutral: they neither extend nor break
// a streak.
package stats

import (
	"fmt"
	"time"

	"goaltrack/internal/logging"
	"goaltrack/internal/types"
)

// Summary is the dashboard payload.
type Summary struct {
	Streak      int `json:"streak"`
	ActiveDays  int `json:"activeDays"`
	MissingDays int `json:"missingDays"`
}

const dayLayout = "2006-01-02"

type dayState struct {
	due  bool
	done bool
}

// Compute derives the summary from a task list. today anchors the streak
// walk and the past/future boundary; tasks dated after today are ignored.
func Compute(tasks []types.Task, today time.Time) Summary {
	days := make(map[string]*dayState)
	for _, t := range tasks {
		st, ok := days[t.Date]
		if !ok {
			st = &dayState{}
			days[t.Date] = st
		}
		st.due = true
		if t.IsCompleted {
			st.done = true
		}
	}

	todayKey := today.Format(dayLayout)
	var sum Summary
	for date, st := range days {
		if date > todayKey {
			continue
		}
		switch {
		case st.done:
			sum.ActiveDays++
		case date < todayKey:
			// Past, due, nothing completed.
			sum.MissingDays++
		}
	}

	sum.Streak = streak(days, today)
	return sum
}

// streak counts consecutive completed days walking backwards from today.
// An untouched today does not break a streak carried from yesterday, and
// days with nothing due are skipped over. The walk is bounded by the
// earliest date in the history.
func streak(days map[string]*dayState, today time.Time) int {
	if len(days) == 0 {
		return 0
	}
	earliest := ""
	for date := range days {
		if earliest == "" || date < earliest {
			earliest = date
		}
	}

	count := 0
	day := today
	for day.Format(dayLayout) >= earliest {
		key := day.Format(dayLayout)
		st, due := days[key]
		switch {
		case due && st.done:
			count++
		case due && key != today.Format(dayLayout):
			// A past day with unfinished work ends the streak.
			return count
		}
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// Store is the read and write surface the service needs. *store.Store
// satisfies it.
type Store interface {
	GetTasksByUser(userID int64) ([]types.Task, error)
	UpdateUserStats(userID int64, streak, activeDays, missingDays int) error
}

// Service computes and persists user stats.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a stats service using the wall clock.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Summary derives the caller's stats from their full task history.
func (s *Service) Summary(userID int64) (Summary, error) {
	tasks, err := s.store.GetTasksByUser(userID)
	if err != nil {
		return Summary{}, fmt.Errorf("load tasks: %w", err)
	}
	return Compute(tasks, s.now()), nil
}

// Refresh recomputes the caller's stats and writes them back to the user
// row so they survive into the session payload.
func (s *Service) Refresh(userID int64) (Summary, error) {
	sum, err := s.Summary(userID)
	if err != nil {
		return Summary{}, err
	}
	if err := s.store.UpdateUserStats(userID, sum.Streak, sum.ActiveDays, sum.MissingDays); err != nil {
		return Summary{}, fmt.Errorf("persist stats: %w", err)
	}
	logging.Store("user %d stats refreshed: streak=%d active=%d missing=%d",
		userID, sum.Streak, sum.ActiveDays, sum.MissingDays)
	return sum, nil
}

// Package types holds the domain entities shared across goaltrack packages.
package types

import "time"

// User is an account that owns goals. The streak counters are derived from
// task history and refreshed on task completion; they are cached here so the
// dashboard does not recompute them on every read.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"-"` // salted hash, never serialized
	Email       string `json:"email"`
	Streak      int    `json:"streak"`
	ActiveDays  int    `json:"activeDays"`
	MissingDays int    `json:"missingDays"`
}

// Goal is a learning objective with a date range. Deleting a user cascades
// to its goals; deleting a goal cascades to its tasks.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"` // YYYY-MM-DD
	EndDate     string    `json:"endDate"`   // YYYY-MM-DD
	CreatedAt   time.Time `json:"createdAt"`
}

// Task is one daily unit of work under a goal. Dates are not unique within
// a goal; same-date tasks keep insertion order.
type Task struct {
	ID              int64   `json:"id"`
	GoalID          int64   `json:"goalId"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Task            string  `json:"task"`
	IsCompleted     bool    `json:"isCompleted"`
	CompletionNotes *string `json:"completionNotes"`
}

// TaskRecord is a transient parsed schedule line. Produced by the schedule
// parser or the fallback generator, consumed by reconciliation, then dropped.
type TaskRecord struct {
	Date string `json:"date"` // YYYY-MM-DD, regex-validated by the parser
	Task string `json:"task"`
}

// ValidationResult is the interpreted outcome of grading a user's concept
// explanation. Only IsValid and the submitted text survive into the Task.
type ValidationResult struct {
	IsValid            bool     `json:"isValid"`
	Feedback           string   `json:"feedback"`
	ConceptsUnderstood []string `json:"conceptsUnderstood"`
	ConceptsMissing    []string `json:"conceptsMissing"`
}

package store

import (
	"path/filepath"
	"testing"
	"time"

	"goaltrack/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestUser(t *testing.T, s *Store, username string) *types.User {
	t.Helper()
	u := &types.User{Username: username, Password: "hash:salt", Email: username + "@example.com"}
	require.NoError(t, s.CreateUser(u))
	return u
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	u := newTestUser(t, s, "alice")
	assert.NotZero(t, u.ID)

	got, err := s.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, 0, got.Streak)

	_, err = s.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DuplicateUsernameRejected(t *testing.T) {
	s := newTestStore(t)

	newTestUser(t, s, "alice")
	err := s.CreateUser(&types.User{Username: "alice", Password: "x", Email: "other@example.com"})
	assert.Error(t, err)
}

func TestStore_UpdateUserStats(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")

	require.NoError(t, s.UpdateUserStats(u.ID, 3, 10, 2))

	got, err := s.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, 10, got.ActiveDays)
	assert.Equal(t, 2, got.MissingDays)

	assert.ErrorIs(t, s.UpdateUserStats(9999, 1, 1, 1), ErrNotFound)
}

func TestStore_GoalTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")

	g := &types.Goal{UserID: u.ID, Title: "Learn Go", StartDate: "2024-03-01", EndDate: "2024-03-08"}
	require.NoError(t, s.CreateGoal(g))
	assert.NotZero(t, g.ID)
	assert.False(t, g.CreatedAt.IsZero())

	task := &types.Task{GoalID: g.ID, Date: "2024-03-01", Task: "Write unit tests"}
	require.NoError(t, s.CreateTask(task))

	tasks, err := s.GetTasksByGoal(g.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2024-03-01", tasks[0].Date)
	assert.Equal(t, "Write unit tests", tasks[0].Task)
	assert.False(t, tasks[0].IsCompleted)
	assert.Nil(t, tasks[0].CompletionNotes)
}

func TestStore_SameDateTasksKeepInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")
	g := &types.Goal{UserID: u.ID, Title: "Learn Go", StartDate: "2024-03-01", EndDate: "2024-03-02"}
	require.NoError(t, s.CreateGoal(g))

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreateTask(&types.Task{GoalID: g.ID, Date: "2024-03-01", Task: text}))
	}

	tasks, err := s.GetTasksByGoal(g.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Task)
	assert.Equal(t, "second", tasks[1].Task)
	assert.Equal(t, "third", tasks[2].Task)
}

func TestStore_CompleteTask(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")
	g := &types.Goal{UserID: u.ID, Title: "Learn Go", StartDate: "2024-03-01", EndDate: "2024-03-02"}
	require.NoError(t, s.CreateGoal(g))
	task := &types.Task{GoalID: g.ID, Date: "2024-03-01", Task: "Write unit tests"}
	require.NoError(t, s.CreateTask(task))

	require.NoError(t, s.CompleteTask(task.ID, "tables and subtests"))

	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletionNotes)
	assert.Equal(t, "tables and subtests", *got.CompletionNotes)
}

func TestStore_CascadeDeleteGoal(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")
	g := &types.Goal{UserID: u.ID, Title: "Learn Go", StartDate: "2024-03-01", EndDate: "2024-03-02"}
	require.NoError(t, s.CreateGoal(g))
	task := &types.Task{GoalID: g.ID, Date: "2024-03-01", Task: "x"}
	require.NoError(t, s.CreateTask(task))

	require.NoError(t, s.DeleteGoal(g.ID))

	_, err := s.GetTask(task.ID)
	assert.ErrorIs(t, err, ErrNotFound, "tasks must cascade with their goal")
}

func TestStore_CascadeDeleteUser(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")
	g := &types.Goal{UserID: u.ID, Title: "Learn Go", StartDate: "2024-03-01", EndDate: "2024-03-02"}
	require.NoError(t, s.CreateGoal(g))
	task := &types.Task{GoalID: g.ID, Date: "2024-03-01", Task: "x"}
	require.NoError(t, s.CreateTask(task))

	require.NoError(t, s.DeleteUser(u.ID))

	_, err := s.GetGoal(g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetTask(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Sessions(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")
	now := time.Now()

	require.NoError(t, s.CreateSession("hash1", u.ID, now.Add(time.Hour)))

	userID, err := s.GetSession("hash1", now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	// Expired sessions resolve to not found and are removed
	require.NoError(t, s.CreateSession("hash2", u.ID, now.Add(-time.Minute)))
	_, err = s.GetSession("hash2", now)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteSession("hash1"))
	_, err = s.GetSession("hash1", now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening runs migrations against an up-to-date schema
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	u := newTestUser(t, s2, "alice")
	assert.NotZero(t, u.ID)
}

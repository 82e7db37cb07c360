package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"goaltrack/internal/auth"
	"goaltrack/internal/goals"
	"goaltrack/internal/schedule"
	"goaltrack/internal/store"
	"goaltrack/internal/types"
)

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// writeGoalErr maps service errors to status codes shared by the goal
// and task handlers.
func writeGoalErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case errors.Is(err, goals.ErrForbidden):
		writeErr(w, http.StatusForbidden, "you don't have permission to access this goal")
	case errors.Is(err, goals.ErrInvalidDate):
		writeErr(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	default:
		writeErr(w, http.StatusInternalServerError, "request failed")
	}
}

// POST /api/goals
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())

	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		writeErr(w, http.StatusBadRequest, "missing required fields: title, startDate, or endDate")
		return
	}

	result, err := s.goals.Create(r.Context(), u.ID, req.Title, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		writeGoalErr(w, err)
		return
	}

	if result.ScheduleStatus == goals.StatusFailed {
		// The goal exists but its tasks could not all be persisted.
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message":         "Goal created but schedule generation failed. Please try again or add tasks manually.",
			"goal":            result.Goal,
			"tasks":           result.Tasks,
			"schedule_status": result.ScheduleStatus,
		})
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// GET /api/goals
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	list, err := s.goals.ListGoals(u.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	if list == nil {
		list = []types.Goal{}
	}
	writeJSON(w, http.StatusOK, list)
}

// DELETE /api/goals/{id}
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid goal ID")
		return
	}
	if err := s.goals.Delete(u.ID, id); err != nil {
		writeGoalErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/goals/{id}/tasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid goal ID")
		return
	}
	tasks, err := s.goals.Tasks(u.ID, id)
	if err != nil {
		writeGoalErr(w, err)
		return
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

type addTaskRequest struct {
	Date string `json:"date"`
	Task string `json:"task"`
}

// POST /api/goals/{id}/tasks
func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	var req addTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Date == "" || req.Task == "" {
		writeErr(w, http.StatusBadRequest, "date and task are required")
		return
	}

	task, err := s.goals.AddTask(u.ID, id, req.Date, req.Task)
	if err != nil {
		writeGoalErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type bulkTasksRequest struct {
	Tasks []types.TaskRecord `json:"tasks"`
}

// POST /api/goals/{id}/bulk-tasks
func (s *Server) handleBulkTasks(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	var req bulkTasksRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Tasks) == 0 {
		writeErr(w, http.StatusBadRequest, "tasks array is required")
		return
	}
	for _, rec := range req.Tasks {
		if rec.Date == "" || rec.Task == "" {
			writeErr(w, http.StatusBadRequest, "each task must have date and task properties")
			return
		}
	}

	tasks, err := s.goals.AddTasks(u.ID, id, req.Tasks)
	if err != nil {
		writeGoalErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tasks)
}

type generateScheduleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// POST /api/generate-schedule previews a schedule without persisting.
func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req generateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		writeErr(w, http.StatusBadRequest, "missing required fields: title, startDate, or endDate")
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	records, source := s.generator.Generate(r.Context(), req.Title, req.Description, start, end)
	resp := map[string]any{"tasks": records, "source": source}
	if source == schedule.SourceFallback {
		resp["message"] = "Failed to generate schedule. Using fallback schedule."
	}
	writeJSON(w, http.StatusOK, resp)
}

package server

import (
	"net/http"

	"goaltrack/internal/auth"
	"goaltrack/internal/logging"
)

type validateTaskRequest struct {
	Concept string `json:"concept"`
}

// POST /api/tasks/{id}/validate grades an explanation against its task.
// A valid result marks the task complete, stores the explanation as
// notes, and refreshes the user's stats.
func (s *Server) handleValidateTask(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var req validateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Concept == "" {
		writeErr(w, http.StatusBadRequest, "concept explanation is required")
		return
	}

	task, err := s.goals.TaskForUser(u.ID, id)
	if err != nil {
		writeGoalErr(w, err)
		return
	}

	result := s.grader.Grade(r.Context(), task.Task, req.Concept)
	if result.IsValid {
		if err := s.goals.Complete(u.ID, id, req.Concept); err != nil {
			writeGoalErr(w, err)
			return
		}
		if _, err := s.stats.Refresh(u.ID); err != nil {
			// Stats are derived data; a refresh failure must not undo a
			// successful validation.
			logging.ServerError("stats refresh for user %d: %v", u.ID, err)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	sum, err := s.stats.Summary(u.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

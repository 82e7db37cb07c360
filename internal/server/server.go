// Package server wires the HTTP API: registration and login, goal and
// task CRUD, AI schedule generation, concept grading, chat, and stats.
package server

import (
	"net/http"
	"time"

	"goaltrack/internal/auth"
	"goaltrack/internal/goals"
	"goaltrack/internal/llm"
	"goaltrack/internal/logging"
	"goaltrack/internal/schedule"
	"goaltrack/internal/stats"
	"goaltrack/internal/validation"
)

// Server holds the services behind the HTTP API.
type Server struct {
	auth      *auth.Service
	goals     *goals.Service
	stats     *stats.Service
	grader    *validation.Grader
	generator *schedule.Generator
	client    llm.Client
}

// Options collects the services a Server needs.
type Options struct {
	Auth      *auth.Service
	Goals     *goals.Service
	Stats     *stats.Service
	Grader    *validation.Grader
	Generator *schedule.Generator
	Client    llm.Client
}

// New creates a Server.
func New(opts Options) *Server {
	return &Server{
		auth:      opts.Auth,
		goals:     opts.Goals,
		stats:     opts.Stats,
		grader:    opts.Grader,
		generator: opts.Generator,
		client:    opts.Client,
	}
}

// Handler builds the route table. Everything under /api except the auth
// endpoints requires a session.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	authed := func(h http.HandlerFunc) http.Handler { return s.auth.RequireAPI(h) }
	mux.Handle("GET /api/user", authed(s.handleCurrentUser))
	mux.Handle("GET /api/goals", authed(s.handleListGoals))
	mux.Handle("POST /api/goals", authed(s.handleCreateGoal))
	mux.Handle("DELETE /api/goals/{id}", authed(s.handleDeleteGoal))
	mux.Handle("GET /api/goals/{id}/tasks", authed(s.handleListTasks))
	mux.Handle("POST /api/goals/{id}/tasks", authed(s.handleAddTask))
	mux.Handle("POST /api/goals/{id}/bulk-tasks", authed(s.handleBulkTasks))
	mux.Handle("POST /api/generate-schedule", authed(s.handleGenerateSchedule))
	mux.Handle("POST /api/tasks/{id}/validate", authed(s.handleValidateTask))
	mux.Handle("POST /api/chat", authed(s.handleChat))
	mux.Handle("GET /api/stats", authed(s.handleStats))

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := logging.StartTimer(logging.CategoryAPI, r.Method+" "+r.URL.Path)
		next.ServeHTTP(w, r)
		timer.Stop()
	})
}

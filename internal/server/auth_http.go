package server

import (
	"errors"
	"net/http"

	"goaltrack/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// POST /api/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, token, exp, err := s.auth.Register(req.Username, req.Password, req.Email)
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, "username, password, and a valid email are required")
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		writeErr(w, http.StatusConflict, "username already taken")
		return
	case err != nil:
		writeErr(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.auth.SetSessionCookie(w, token, exp)
	writeJSON(w, http.StatusCreated, u)
}

// POST /api/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, token, exp, err := s.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeErr(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.auth.SetSessionCookie(w, token, exp)
	writeJSON(w, http.StatusOK, u)
}

// POST /api/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r)
	s.auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/user
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, u)
}

// Package auth implements username/password accounts with cookie
// sessions. Session tokens are random, stored server side only as a
// sha256 hash, and expire after a configurable TTL.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goaltrack/internal/logging"
	"goaltrack/internal/store"
	"goaltrack/internal/types"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers unknown username and wrong password
	// alike, so login failures do not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken means registration hit an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidInput means a registration field failed validation.
	ErrInvalidInput = errors.New("invalid registration input")
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(*types.User) error
	GetUser(int64) (*types.User, error)
	GetUserByUsername(string) (*types.User, error)
	CreateSession(tokenHash string, userID int64, expiresAt time.Time) error
	GetSession(tokenHash string, now time.Time) (int64, error)
	DeleteSession(tokenHash string) error
}

// Service handles registration, login, and request authentication.
type Service struct {
	store      Store
	cookieName string
	sessionTTL time.Duration
	now        func() time.Time
}

// NewService creates an auth service.
func NewService(st Store, cookieName string, sessionTTL time.Duration) *Service {
	return &Service{
		store:      st,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// newToken returns an unguessable session token.
func newToken() string {
	return uuid.NewString() + uuid.NewString()
}

// Register creates a user with an scrypt-hashed password and opens a
// session for it. Returns the user, the session token, and its expiry.
func (s *Service) Register(username, password, email string) (*types.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !strings.Contains(email, "@") {
		return nil, "", time.Time{}, ErrInvalidInput
	}

	if _, err := s.store.GetUserByUsername(username); err == nil {
		return nil, "", time.Time{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", time.Time{}, fmt.Errorf("check username: %w", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("hash password: %w", err)
	}

	u := &types.User{Username: username, Password: hashed, Email: email}
	if err := s.store.CreateUser(u); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("create user: %w", err)
	}
	logging.Auth("registered user %d (%s)", u.ID, u.Username)

	token, exp, err := s.openSession(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Login verifies credentials and opens a session.
func (s *Service) Login(username, password string) (*types.User, string, time.Time, error) {
	u, err := s.store.GetUserByUsername(strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := VerifyPassword(password, u.Password)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		logging.Auth("failed login for %q", username)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.openSession(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	logging.Auth("user %d logged in", u.ID)
	return u, token, exp, nil
}

func (s *Service) openSession(userID int64) (string, time.Time, error) {
	token := newToken()
	exp := s.now().Add(s.sessionTTL)
	if err := s.store.CreateSession(hashToken(token), userID, exp); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}
	return token, exp, nil
}

// Authenticate resolves the request's session cookie to a user.
func (s *Service) Authenticate(r *http.Request) (*types.User, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	userID, err := s.store.GetSession(hashToken(cookie.Value), s.now())
	if err != nil {
		return nil, false
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, false
	}
	return u, true
}

// Logout revokes the request's session, if any.
func (s *Service) Logout(r *http.Request) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	_ = s.store.DeleteSession(hashToken(cookie.Value))
}

// SetSessionCookie writes the session cookie on a response.
func (s *Service) SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAPI wraps a handler, rejecting unauthenticated requests with a
// JSON 401 and attaching the user to the context otherwise.
func (s *Service) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.Authenticate(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

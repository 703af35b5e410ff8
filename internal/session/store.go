// Package session owns the authenticated user's token and identity. The store
// persists at most one session in the local state database so a signed-in user
// survives process restarts, the way the browser app kept its token in
// localStorage.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
)

type Session struct {
	Token string
	User  api.User
}

// Store is the process-wide session holder. It implements api.TokenSource.
type Store struct {
	db  *sql.DB
	log *slog.Logger

	mu      sync.Mutex
	current *Session
}

// NewStore loads any persisted session into memory. A corrupt persisted row is
// discarded rather than blocking startup.
func NewStore(db *sql.DB, logger *slog.Logger) (*Store, error) {
	s := &Store{db: db, log: logger}

	var token, userJSON string
	err := db.QueryRow("SELECT token, user_json FROM sessions WHERE id = 1").Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user api.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		logger.Warn("discarding corrupt persisted session", "error", err)
		if _, err := db.Exec("DELETE FROM sessions WHERE id = 1"); err != nil {
			return nil, fmt.Errorf("failed to discard session: %w", err)
		}
		return s, nil
	}

	s.current = &Session{Token: token, User: user}
	return s, nil
}

// Set stores the session in memory and persists it.
func (s *Store) Set(token string, user api.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, token, user_json) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_json = excluded.user_json
	`, token, string(userJSON))
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = &Session{Token: token, User: user}
	return nil
}

// Clear destroys the session. Used on logout and on token invalidation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.current = nil
	return nil
}

// Current returns a copy of the active session, or nil when anonymous.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Token implements api.TokenSource; empty when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Invalidate is the gateway's 401 hook: the backend rejected the token, so the
// session is gone. Anonymous calls are a no-op.
func (s *Store) Invalidate() {
	if !s.Authenticated() {
		return
	}
	s.log.Info("session invalidated by backend")
	if err := s.Clear(); err != nil {
		s.log.Error("failed to clear invalidated session", "error", err)
	}
}

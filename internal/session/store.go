// Package session owns the authenticated-identity lifecycle: login,
// registration, logout, token persistence, and the in-memory user state the
// rest of the tool reads. A session is either fully authenticated or fully
// anonymous; the store enforces user != nil ⇔ access token != "" at every
// mutation point.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/model"
)

// Store holds the current session and keeps the credentials file in sync
// with every mutation. It implements api.CredentialSource.
type Store struct {
	mu           sync.RWMutex
	path         string
	logger       *slog.Logger
	user         *model.User
	accessToken  string
	refreshToken string
	observers    []func()
}

// NewStore creates a session store backed by the credentials file at path
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Subscribe registers an observer notified after every session change
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()
	for _, fn := range observers {
		fn()
	}
}

// Restore loads the persisted session, if any. It never fails: a corrupt
// user entry degrades to a logged-out session and the corrupt file is
// purged, so calling Restore again is a no-op.
func (s *Store) Restore() {
	creds, err := load(s.path)
	if err != nil {
		s.logger.Warn("discarding unreadable credentials", "error", err)
		s.Invalidate()
		return
	}

	if creds.Token == "" || creds.User == "" {
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(creds.User), &user); err != nil {
		s.logger.Warn("discarding corrupt stored user", "error", err)
		s.Invalidate()
		return
	}

	s.mu.Lock()
	s.user = &user
	s.accessToken = creds.Token
	s.refreshToken = creds.RefreshToken
	s.mu.Unlock()
	s.notify()
}

// Login authenticates against the backend. On failure the prior session is
// left untouched; on success all three entries are persisted before the
// in-memory state changes hands.
func (s *Store) Login(ctx context.Context, client *api.Client, creds api.LoginCredentials) error {
	resp, err := client.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

// Register creates an account. A successful registration is
// indistinguishable downstream from a successful login.
func (s *Store) Register(ctx context.Context, client *api.Client, input api.RegisterInput) error {
	resp, err := client.Register(ctx, input)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Store) establish(resp *model.AuthResponse) error {
	serialized, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	if err := save(s.path, credentials{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         string(serialized),
	}); err != nil {
		return err
	}

	user := resp.User
	s.mu.Lock()
	s.user = &user
	s.accessToken = resp.Token
	s.refreshToken = resp.RefreshToken
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout best-effort informs the backend, then unconditionally clears the
// persisted and in-memory session. A failing backend call is logged, never
// surfaced: local logout always succeeds.
func (s *Store) Logout(ctx context.Context, client *api.Client) {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken != "" {
		if err := client.Logout(ctx, refreshToken); err != nil {
			s.logger.Warn("backend logout failed", "error", err)
		}
	}
	s.Invalidate()
}

// UpdateUser replaces the identity record in memory and on disk without
// touching the tokens. It does not call the backend.
func (s *Store) UpdateUser(user model.User) error {
	serialized, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.accessToken == "" {
		s.mu.Unlock()
		return nil
	}
	if err := save(s.path, credentials{
		Token:        s.accessToken,
		RefreshToken: s.refreshToken,
		User:         string(serialized),
	}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.user = &user
	s.mu.Unlock()
	s.notify()
	return nil
}

// Invalidate purges the persisted credentials and clears the in-memory
// session. It is the subscriber end of the client's session-invalidated
// signal and the unconditional tail of Logout.
func (s *Store) Invalidate() {
	if err := purge(s.path); err != nil {
		s.logger.Warn("purging credentials failed", "error", err)
	}

	s.mu.Lock()
	changed := s.user != nil || s.accessToken != "" || s.refreshToken != ""
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// IsAuthenticated reports whether a user is currently signed in
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns a copy of the signed-in identity, or nil
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// AccessToken returns the current bearer token, or "" when anonymous
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshTokenValue returns the current refresh token, or ""
func (s *Store) RefreshTokenValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

func userJSON(user *model.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

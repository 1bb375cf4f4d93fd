// Package session holds the in-progress profile and the durable session
// identity. The Store is an explicit context object constructed at app start
// and handed to the controllers that need it; nothing reaches for it as a
// global.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

const sessionFile = "session"

// Store owns the in-memory profile being assembled before registration and
// the opaque session identifier persisted across runs. The profile is never
// written to disk; the session identifier is the only durable local state.
type Store struct {
	mu        sync.Mutex
	dir       string
	profile   model.Profile
	sessionID string
}

// NewStore creates a Store rooted at dir, loading a previously persisted
// session identifier if one exists.
func NewStore(dir string) *Store {
	s := &Store{dir: dir}
	if b, err := os.ReadFile(s.path()); err == nil {
		s.sessionID = strings.TrimSpace(string(b))
	}
	return s
}

func (s *Store) path() string { return filepath.Join(s.dir, sessionFile) }

// Profile returns the current in-progress profile.
func (s *Store) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetProfile replaces the in-progress profile.
func (s *Store) SetProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// SetBodyImageURL records (or clears) the validated full-body image URL.
func (s *Store) SetBodyImageURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.BodyImageURL = url
}

// ResetProfile clears the in-progress profile after registration completes.
func (s *Store) ResetProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = model.Profile{}
}

// SessionID returns the persisted session identifier, if any. Its presence
// means the user is registered.
func (s *Store) SessionID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID, s.sessionID != ""
}

// SetSessionID persists the identifier returned by registration.
func (s *Store) SetSessionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty session id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(id+"\n"), 0o600); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.sessionID = id
	return nil
}

// ClearSession forgets the persisted identifier.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	s.sessionID = ""
	return nil
}

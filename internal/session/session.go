// ABOUTME: Persists the bearer token in the user's config directory
// ABOUTME: File-backed stand-in for the browser's origin-scoped storage

package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// tokenFileName is the fixed storage key for the session token
const tokenFileName = "token"

// Store holds the single auth token for this machine user.
// Writes are last-writer-wins; the lock only keeps concurrent
// request goroutines from interleaving partial file operations.
type Store struct {
	configDir string
	mu        sync.Mutex
}

// New creates a token store rooted at the given config directory
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "birthday-tracker")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "birthday-tracker")
}

func (s *Store) tokenFile() string {
	return filepath.Join(s.configDir, tokenFileName)
}

// Token returns the stored token, if any. An unreadable or empty
// file reads as unauthenticated rather than an error.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save persists the token, replacing any previous one
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenFile(), []byte(token+"\n"), 0600)
}

// Clear removes the stored token. Clearing an already-empty store is a no-op,
// so concurrent forced logouts collapse into one.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.tokenFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsAuthenticated reports whether a token is present
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// ABOUTME: Process-wide authentication state for the client
// ABOUTME: Derives the current user from the stored token plus a profile fetch

package auth

import (
	"context"
	"sync"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/session"
)

// Manager holds the current user. A non-nil user always comes from a
// server-confirmed profile fetch, never from the token alone, so a
// non-nil user implies a valid session token exists.
type Manager struct {
	client  *api.Client
	session *session.Store

	mu      sync.Mutex
	user    *api.User
	loading bool
}

// NewManager creates an auth manager. Loading stays true until the
// first profile fetch resolves, so the UI can defer routing decisions.
func NewManager(client *api.Client, store *session.Store) *Manager {
	return &Manager{
		client:  client,
		session: store,
		loading: true,
	}
}

// Bootstrap resolves the initial auth state: if a token is stored, fetch
// the profile; a failed fetch means the token is stale, so both go.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.fetchUser(ctx)
}

// Login persists the token and re-runs the profile fetch. The caller
// checks User afterwards; a nil user means the token did not hold up.
func (m *Manager) Login(ctx context.Context, token string) error {
	if err := m.session.Save(token); err != nil {
		return err
	}
	m.fetchUser(ctx)
	return nil
}

// Logout clears the session and the user synchronously, no network call
func (m *Manager) Logout() {
	m.session.Clear()
	m.setUser(nil)
}

// RefreshUser re-runs the profile fetch without touching the token
func (m *Manager) RefreshUser(ctx context.Context) {
	m.fetchUser(ctx)
}

// User returns the current user, nil when unauthenticated
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether the initial session check is still pending
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) fetchUser(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	if !m.session.IsAuthenticated() {
		m.setUser(nil)
		return
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		// Stale or revoked token: drop the session rather than keep one
		// we cannot prove.
		m.session.Clear()
		m.setUser(nil)
		return
	}
	m.setUser(user)
}

func (m *Manager) setUser(user *api.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
}

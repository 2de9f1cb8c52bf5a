// Package session owns the authenticated user state and its persistence.
// The manager is the single source of truth for "is a user signed in" and
// is passed explicitly to every component that needs it.
package session

import (
	"encoding/json"
	"sync"

	"github.com/finshield/console/internal/localstore"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
)

// Persisted key names. Kept stable so an existing console database keeps
// its session across upgrades.
const (
	keyUser    = "finshield_user"
	keyToken   = "finshield_token"
	keyRefresh = "finshield_refresh"
)

// Manager holds the current session triple. All methods are safe for
// concurrent use.
type Manager struct {
	mu     sync.RWMutex
	store  *localstore.Store
	logger logging.Logger

	user         *model.User
	accessToken  string
	refreshToken string

	loading  bool
	restored bool

	logoutHook func()
}

// NewManager creates a Manager in the loading state. Call Restore before
// the route guard makes its first decision.
func NewManager(store *localstore.Store, logger logging.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger.With(logging.Field{Key: "component", Value: "session"}),
		loading: true,
	}
}

// SetLogoutHook registers the full-reset navigation performed on logout.
// The hook replaces the whole authenticated view tree rather than patching
// state in place, so no authenticated in-memory state survives.
func (m *Manager) SetLogoutHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutHook = fn
}

// Restore reads the persisted session and, if both a serialized user and
// an access token are present, adopts them without re-validating against
// the server (trust-on-read). A user record that fails to parse clears all
// persisted session keys. Restore runs exactly once per process; repeat
// calls are no-ops.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.restored {
		return
	}
	m.restored = true
	defer func() { m.loading = false }()

	stored, haveUser, err := m.store.Get(keyUser)
	if err != nil {
		m.logger.Warn("reading persisted user failed", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	token, haveToken, err := m.store.Get(keyToken)
	if err != nil {
		m.logger.Warn("reading persisted token failed", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	if !haveUser || !haveToken {
		m.logger.Info("no session found, user must login")
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(stored), &user); err != nil {
		// Corrupt record: drop every session key so no partial session
		// is left behind.
		m.logger.Error("session parsing error, clearing session",
			logging.Field{Key: "error", Value: err.Error()})
		if err := m.store.Delete(keyUser, keyToken, keyRefresh); err != nil {
			m.logger.Warn("clearing session keys failed", logging.Field{Key: "error", Value: err.Error()})
		}
		return
	}

	refresh, _, _ := m.store.Get(keyRefresh)

	m.logger.Info("restoring session", logging.Field{Key: "username", Value: user.Username})
	m.user = &user
	m.accessToken = token
	m.refreshToken = refresh
}

// Loading is true until Restore has completed.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Authenticated reports whether a user is signed in.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// AccessToken implements interfaces.TokenProvider.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessToken
}

// HasPersistedToken reports whether an access token exists in the store,
// independent of whether a user was parsed. The protected route guard
// consults this to avoid bouncing a session that is merely mid-restore.
func (m *Manager) HasPersistedToken() bool {
	_, ok, err := m.store.Get(keyToken)
	if err != nil {
		return false
	}
	return ok
}

// Login persists the triple obtained from a prior authentication exchange
// and marks the session authenticated. No network call happens here.
func (m *Manager) Login(user *model.User, accessToken, refreshToken string) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(keyToken, accessToken); err != nil {
		return err
	}
	if err := m.store.Set(keyRefresh, refreshToken); err != nil {
		return err
	}
	if err := m.store.Set(keyUser, string(encoded)); err != nil {
		return err
	}

	m.logger.Info("session established", logging.Field{Key: "username", Value: user.Username})
	m.user = user
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	return nil
}

// Logout clears the persisted and in-memory session and runs the logout
// hook, which performs the full navigation back to the public entry point.
func (m *Manager) Logout() {
	m.mu.Lock()
	if err := m.store.Delete(keyUser, keyToken, keyRefresh); err != nil {
		m.logger.Warn("clearing session keys failed", logging.Field{Key: "error", Value: err.Error()})
	}
	m.logger.Info("session cleared")
	m.user = nil
	m.accessToken = ""
	m.refreshToken = ""
	hook := m.logoutHook
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Package session persists the login token and user snapshot between runs.
package session

import (
	"errors"
	"strings"
	"sync"

	"adminpanel/internal/domain"
)

// ErrNoSession is returned by Store.Load when nothing has been saved.
var ErrNoSession = errors.New("no stored session")

type Session struct {
	Token string          `json:"token"`
	User  domain.AuthUser `json:"user"`
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}

type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Manager is the in-process view of the stored session. It is safe for
// concurrent use and its Token method is what API clients read at call time.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current Session
}

// NewManager loads the stored session. A missing or unreadable session starts
// logged out; only unexpected store errors are returned.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store}
	s, err := store.Load()
	switch {
	case err == nil:
		if s.Valid() {
			m.current = s
		}
	case errors.Is(err, ErrNoSession):
	default:
		return m, err
	}
	return m, nil
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

func (m *Manager) User() (domain.AuthUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.User, m.current.Valid()
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Valid()
}

// Set replaces the session and persists it.
func (m *Manager) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(s); err != nil {
		return err
	}
	m.current = s
	return nil
}

// Clear forgets the session in memory even when the store fails.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	return m.store.Clear()
}

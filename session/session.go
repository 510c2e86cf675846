// Package session owns router lifecycles for the host application: one
// router per logical session, torn down with the session. The router
// itself never manages its own lifetime.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/msgbus"
	"github.com/dshills/msgbus/diag"
)

// Manager creates and tears down sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sink     diag.Sink
	sessions map[string]*Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSink sets the diagnostics sink handed to every session's router.
func WithSink(sink diag.Sink) ManagerOption {
	return func(m *Manager) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// NewManager creates a session manager. The default sink discards all
// diagnostics.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sink:     diag.Nop(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromConfig builds the diagnostics sink described by cfg and
// returns a manager using it.
func NewManagerFromConfig(cfg Config) (*Manager, error) {
	sink, err := cfg.BuildSink()
	if err != nil {
		return nil, err
	}
	return NewManager(WithSink(sink)), nil
}

// Create starts a new session with a fresh, empty router.
func (m *Manager) Create() *Session {
	s := &Session{
		id:      uuid.NewString(),
		router:  msgbus.New(msgbus.WithDiagnostics(m.sink)),
		manager: m,
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given ID, if it is still live.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// TeardownAll tears down every live session.
func (m *Manager) TeardownAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Teardown()
	}
}

// Session is one logical session owning one router.
type Session struct {
	id      string
	router  *msgbus.Router
	manager *Manager
	once    sync.Once
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Router returns the session's message router.
func (s *Session) Router() *msgbus.Router {
	return s.router
}

// Teardown closes the session's router, dropping all registrations and
// permanently invalidating outstanding handles. Idempotent.
func (s *Session) Teardown() {
	s.once.Do(func() {
		s.router.Close()
		s.manager.mu.Lock()
		delete(s.manager.sessions, s.id)
		s.manager.mu.Unlock()
	})
}

package session

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/generate"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session: not found")

// Manager tracks live sessions by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewManager creates an empty session manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Start creates a session for a generated game and registers it.
func (m *Manager) Start(game *generate.Game) *Session {
	s := New(game, m.logger)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.String("seed_code", game.SeedCode),
		zap.String("chaos_tier", game.Chaos.TierName),
	)
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End discards a session. Ending an unknown session is a no-op.
func (m *Manager) End(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.logger.Info("session ended", zap.String("session_id", id))
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Package session tracks per-user conversation state. State is transient by
// design: a process restart resets every user to idle.
package session

import (
	"sync"
	"time"

	"shoplist-bot/internal/assistant"
)

// Mode is the conversation mode of one user.
type Mode int

const (
	ModeIdle Mode = iota
	// ModeAwaitingProduct: the next text message is a product to add.
	ModeAwaitingProduct
	// ModeAwaitingQuestion: the next text message is a one-shot AI question.
	ModeAwaitingQuestion
	// ModeAIChat: sticky mode, every text message goes to the assistant.
	ModeAIChat
)

// DefaultTTL bounds how long an abandoned dialog stays active.
const DefaultTTL = 30 * time.Minute

type session struct {
	mode      Mode
	pending   []assistant.Suggestion
	greeted   bool
	expiresAt time.Time
}

// Manager is a keyed in-memory session store. At most one session exists per
// user; entering a new mode discards the previous incomplete one.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a Manager with the given session TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[int64]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Mode returns the user's current mode. An expired or absent session reads as
// idle.
func (m *Manager) Mode(userID int64) Mode {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.active(userID)
	if s == nil {
		return ModeIdle
	}
	return s.mode
}

// SetMode enters a new mode for the user, discarding any prior session state.
// Setting ModeIdle clears the session entirely.
func (m *Manager) SetMode(userID int64, mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mode == ModeIdle {
		delete(m.sessions, userID)
		return
	}
	m.sessions[userID] = &session{
		mode:      mode,
		expiresAt: m.now().Add(m.ttl),
	}
}

// Advance switches the mode of the active session in place, keeping its
// pending suggestions and greeting flag. Without an active session it behaves
// like SetMode.
func (m *Manager) Advance(userID int64, mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mode == ModeIdle {
		delete(m.sessions, userID)
		return
	}
	s := m.active(userID)
	if s == nil {
		m.sessions[userID] = &session{
			mode:      mode,
			expiresAt: m.now().Add(m.ttl),
		}
		return
	}
	s.mode = mode
	s.expiresAt = m.now().Add(m.ttl)
}

// Clear resets the user to idle, discarding in-flight input.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// SetPending stores AI-suggested products awaiting user confirmation on the
// active session. Without an active session the suggestions are dropped.
func (m *Manager) SetPending(userID int64, products []assistant.Suggestion) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.active(userID)
	if s == nil {
		return
	}
	s.pending = products
	s.expiresAt = m.now().Add(m.ttl)
}

// TakePending returns and clears the pending suggestions of the active
// session.
func (m *Manager) TakePending(userID int64) []assistant.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.active(userID)
	if s == nil {
		return nil
	}
	pending := s.pending
	s.pending = nil
	return pending
}

// MarkGreeted records that the AI-chat welcome banner was shown and reports
// whether this call was the first one for the active session.
func (m *Manager) MarkGreeted(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.active(userID)
	if s == nil || s.greeted {
		return false
	}
	s.greeted = true
	return true
}

// active returns the user's session or nil, removing it when expired. Callers
// must hold the lock.
func (m *Manager) active(userID int64) *session {
	s, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	if m.now().After(s.expiresAt) {
		delete(m.sessions, userID)
		return nil
	}
	return s
}

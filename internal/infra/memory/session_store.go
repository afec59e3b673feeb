package memory

import (
	"sync"

	"infra-checklist/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Widget
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Widget),
	}
}

func (s *SessionStore) Get(sessionID string) (*app.Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	widget, ok := s.sessions[sessionID]
	return widget, ok
}

func (s *SessionStore) Swap(sessionID string, widget *app.Widget) (*app.Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.sessions[sessionID]
	s.sessions[sessionID] = widget
	return prev, ok
}

func (s *SessionStore) DeleteIf(sessionID string, widget *app.Widget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions[sessionID]; !ok || current != widget {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

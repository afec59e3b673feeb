package redis

import (
	"context"
	"sync"
	"time"

	"infra-checklist/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Widgets live in a local map; they hold display handles bound to one
//     connection and cannot move between instances.
//   - Redis only carries a liveness marker per session so operators can see
//     open checklists across instances. Answers are never written.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Widget
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
	return prev, ok
}

func (s *SessionStore) DeleteIf(sessionID string, widget *app.Widget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions[sessionID]; !ok || current != widget {
		return false
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
	return true
}

// Touch rewrites the liveness marker of a locally registered session, so a
// marker that already expired comes back.
func (s *SessionStore) Touch(ctx context.Context, sessionID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil
	}
	return s.client.Set(ctx, s.key(sessionID), "1", s.ttl).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "checklist:session:" + sessionID
}

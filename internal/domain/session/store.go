// internal/domain/session/store.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// Store keeps browsing sessions in memory. Sessions expire after ttl without
// activity and the least recently used session is dropped once size is
// reached; either way the session's cart goes with it.
type Store struct {
	mu     sync.Mutex
	lru    *expirable.LRU[string, *Session]
	logger *logrus.Logger
}

// NewStore creates a session store holding at most size sessions
func NewStore(size int, ttl time.Duration, logger *logrus.Logger) *Store {
	s := &Store{logger: logger}
	s.lru = expirable.NewLRU[string, *Session](size, s.onEvict, ttl)
	return s
}

// Get returns a live session and refreshes its idle timer
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lru.Get(id)
	if !ok {
		return nil, false
	}
	s.lru.Add(id, sess)
	return sess, true
}

// GetOrCreate returns the session for id, or starts a new one with a fresh
// ID when id is empty or unknown. created reports which happened.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if existing, ok := s.lru.Get(id); ok {
			s.lru.Add(id, existing)
			return existing, false
		}
	}

	sess = newSession(uuid.New().String())
	s.lru.Add(sess.ID, sess)
	s.logger.WithField("session_id", sess.ID).Debug("session started")
	return sess, true
}

// End removes a session and everything it owns
func (s *Store) End(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Remove(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.lru.Len()
}

// AuthStateChanged applies a sign-in (identity set) or sign-out (nil)
// notification to the session it was issued for.
func (s *Store) AuthStateChanged(sessionID string, identity *Identity) {
	sess, ok := s.Get(sessionID)
	if !ok {
		s.logger.WithField("session_id", sessionID).Warn("auth event for unknown session ignored")
		return
	}

	sess.SetIdentity(identity)

	entry := s.logger.WithField("session_id", sessionID)
	if identity != nil {
		entry.WithField("user_id", identity.UserID).Info("session signed in")
	} else {
		entry.Info("session signed out")
	}
}

func (s *Store) onEvict(id string, _ *Session) {
	s.logger.WithField("session_id", id).Debug("session ended")
}

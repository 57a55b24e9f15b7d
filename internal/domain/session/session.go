// internal/domain/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/your-org/seed-marketplace/internal/domain/cart"
)

// State is everything a browsing session owns
type State struct {
	Cart        *cart.Ledger
	Identity    *Holder
	LastReceipt *cart.Receipt
}

// Session is one browsing session. Its state is only reachable through With,
// which serializes requests that share the session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state State
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		state: State{
			Cart:     cart.NewLedger(),
			Identity: &Holder{},
		},
	}
}

// With runs fn while holding the session lock
func (s *Session) With(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Identity returns the session's current identity
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Identity.Current()
}

// SetIdentity is called on sign-in (non-nil) and sign-out (nil)
func (s *Session) SetIdentity(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Identity.Set(identity)
}

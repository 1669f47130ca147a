package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/background"
)

// Session is the explicit session context passed to the storefront
// endpoints: one cart store, the signed-in user (if any) and the
// once-per-session merge flag.
type Session struct {
	ID    string
	Store *Store

	mu     sync.Mutex
	userID *int64
	merged bool
}

func (s *Session) UserID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// SignIn binds the session to an authenticated user and runs the one-time
// guest cart merge: fold all local lines into the server cart in a single
// atomic Merge, then adopt the merged result locally. A failed merge leaves
// the server cart untouched, so the next request can retry without
// double-counting, and the session-scoped flag stops repeated sign-ins from
// merging twice. A session already bound to one account refuses another.
func (s *Session) SignIn(ctx context.Context, userID int64, server Backend) error {
	s.mu.Lock()
	if s.merged {
		defer s.mu.Unlock()
		if s.userID != nil && *s.userID != userID {
			return errors.New("session already belongs to another account")
		}
		return nil
	}
	s.mu.Unlock()

	lines, err := server.Merge(ctx, s.Store.Lines())
	if err != nil {
		return fmt.Errorf("merge cart: %w", err)
	}

	s.mu.Lock()
	s.userID = &userID
	s.merged = true
	s.mu.Unlock()

	s.Store.replace(lines, server)
	return nil
}

// Manager hands out sessions keyed by an opaque id the client echoes back.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	queue    *background.Queue
}

func NewManager(queue *background.Queue) *Manager {
	return &Manager{sessions: make(map[string]*Session), queue: queue}
}

// Get returns the session for id, creating a fresh guest session when the id
// is unknown or empty.
func (m *Manager) Get(id string) *Session {
	if id != "" {
		m.mu.RLock()
		sess, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return sess
		}
	}
	sess := &Session{
		ID:    uuid.NewString(),
		Store: NewStore(NewMemoryBackend(), m.queue),
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Drop removes a session, e.g. after its order is placed and the client is
// done with it.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

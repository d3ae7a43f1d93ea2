package session

import (
	"sync"
	"time"
)

// Store persists sessions keyed by ID. Implementations must be safe for
// concurrent use. Get returns a private snapshot and Put persists one, so
// concurrent requests sharing a cookie never mutate the same Session value.
type Store interface {
	Get(id string) (*Session, bool)
	Put(s *Session)
	Delete(id string)
}

// MemoryStore is an in-memory Store. Sessions do not survive a process
// restart, matching the at-most-once-effort guarantee of the pending
// registration flow. Expired sessions are swept in the background.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates a MemoryStore and starts its cleanup goroutine.
func NewMemoryStore() *MemoryStore {
	st := &MemoryStore{sessions: make(map[string]*Session)}
	go st.cleanup()
	return st
}

func (st *MemoryStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(st.sessions, id)
		return nil, false
	}
	return s.clone(), true
}

func (st *MemoryStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s.clone()
}

func (st *MemoryStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// cleanup runs periodically and removes expired sessions.
func (st *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		st.mu.Lock()
		now := time.Now()
		for id, s := range st.sessions {
			if now.After(s.ExpiresAt) {
				delete(st.sessions, id)
			}
		}
		st.mu.Unlock()
	}
}

package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	session  *AssessmentSession
	email    string
	lastSeen time.Time
}

// SessionStore keeps in-flight assessment sessions keyed by opaque ids.
// Abandoned flows are reaped after the configured idle TTL; nothing about an
// unfinished flow is persisted.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*sessionEntry
	ttl       time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

// NewSessionStore creates a store and starts its expiry sweeper. Callers that
// do not hold the store for the process lifetime should Close it to stop the
// sweeper.
func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go store.sweepLoop()
	return store
}

// Close stops the expiry sweeper. Safe to call more than once.
func (st *SessionStore) Close() {
	st.closeOnce.Do(func() { close(st.done) })
}

// Create registers a new session for a user and returns its id.
func (st *SessionStore) Create(email string, cfg EngineConfig, generator TextGenerator) (string, *AssessmentSession) {
	session := NewAssessmentSession(cfg, generator)
	id := uuid.NewString()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = &sessionEntry{
		session:  session,
		email:    email,
		lastSeen: time.Now(),
	}
	return id, session
}

// Get returns the session for an id if it exists and belongs to the user.
func (st *SessionStore) Get(id, email string) (*AssessmentSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.sessions[id]
	if !ok || entry.email != email {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Delete discards a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.sweep(time.Now())
		case <-st.done:
			return
		}
	}
}

func (st *SessionStore) sweep(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, entry := range st.sessions {
		if now.Sub(entry.lastSeen) > st.ttl {
			delete(st.sessions, id)
			log.Printf("Expired idle assessment session %s", id)
		}
	}
}

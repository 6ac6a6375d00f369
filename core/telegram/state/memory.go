package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/festbot/core/logger"
)

// MemoryOptions configures the in-memory manager.
type MemoryOptions struct {
	// TTL bounds how long an untouched session survives; 0 disables expiry.
	TTL time.Duration
	// SweepInterval is how often expired sessions are evicted. Defaults to TTL/4.
	SweepInterval time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// MemoryManager is an in-memory Manager with optional TTL eviction.
type MemoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	ttl  time.Duration
	now  func() time.Time
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

var _ Manager = (*MemoryManager)(nil)

// NewMemoryManager constructs an in-memory Manager. When opts.TTL is set a
// background sweeper runs until Close.
func NewMemoryManager(opts MemoryOptions) *MemoryManager {
	m := &MemoryManager{
		sessions: make(map[int64]*Session),
		ttl:      opts.TTL,
		now:      opts.Now,
		stop:     make(chan struct{}),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.ttl > 0 {
		interval := opts.SweepInterval
		if interval <= 0 {
			interval = m.ttl / 4
		}
		m.wg.Add(1)
		go m.sweepLoop(interval)
	}
	return m
}

// Get returns a copy of the session for a user. Expired sessions are treated as absent.
func (m *MemoryManager) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	if !ok || m.expired(sess) {
		return Session{UserID: userID, State: StateIdle}, false
	}
	return sess.clone(), true
}

// Start creates a fresh session in state st, discarding previous answers.
func (m *MemoryManager) Start(userID int64, st State) Session {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     st,
		Answers:   make(map[string]string),
		UpdatedAt: m.now(),
	}

	m.mu.Lock()
	m.sessions[userID] = sess
	m.mu.Unlock()

	return sess.clone()
}

// Advance records an answer and moves the session to the next state.
func (m *MemoryManager) Advance(userID int64, field, value string, st State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok || m.expired(sess) {
		return false
	}
	if field != "" {
		sess.Answers[field] = value
	}
	sess.State = st
	sess.UpdatedAt = m.now()
	return true
}

// Clear removes the entire session for a user.
func (m *MemoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len reports the number of stored sessions, including expired ones not yet swept.
func (m *MemoryManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts expired sessions and returns how many were removed.
func (m *MemoryManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, sess := range m.sessions {
		if m.expired(sess) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Close stops the sweeper. Sessions stay readable.
func (m *MemoryManager) Close() {
	m.once.Do(func() {
		close(m.stop)
		m.wg.Wait()
	})
}

func (m *MemoryManager) expired(sess *Session) bool {
	return m.ttl > 0 && m.now().Sub(sess.UpdatedAt) > m.ttl
}

func (m *MemoryManager) sweepLoop(interval time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Debug(context.Background(), "flow", "session.evicted",
					slog.Int("count", n),
					slog.Int("live", m.Len()),
				)
			}
		}
	}
}

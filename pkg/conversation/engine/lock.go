package engine

import "sync"

// SessionLocker serializes turns within a session. Two concurrent messages for
// the same session id racing on the store's read-modify-write would corrupt
// the collected/pending field sets; turns across different sessions are
// independent and run in parallel.
type SessionLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionLocker creates an empty per-session lock table.
func NewSessionLocker() *SessionLocker {
	return &SessionLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the exclusive lock for a session id, creating it on first use.
func (l *SessionLocker) Lock(sessionID string) {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()
	m.Lock()
}

// Unlock releases the session's lock.
func (l *SessionLocker) Unlock(sessionID string) {
	l.mu.Lock()
	m := l.locks[sessionID]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}

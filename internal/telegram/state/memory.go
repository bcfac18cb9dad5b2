package state

import "sync"

// Manager orchestrates user sessions and FSM state transitions.
// Individual calls do NOT lock: callers must hold Acquire for the
// user before reading or mutating the session, which the serialize
// middleware does for the whole update.
type Manager interface {
	// Acquire blocks until the user's session is free and returns the
	// release function. The router holds this for the full update.
	Acquire(userID int64) (release func())

	Get(userID int64) Session
	SetState(userID int64, st State)
	GetState(userID int64) State
	InProgress(userID int64) bool

	// Update applies fn to the user's session in place, creating an
	// idle session first if none exists. Fields not touched by fn are
	// preserved.
	Update(userID int64, fn func(*Session))

	// Clear resets the session to idle and drops all drafts.
	Clear(userID int64)
}

type entry struct {
	// mu serializes whole updates for one user. It is taken by Acquire
	// only; the accessors below rely on the caller holding it.
	mu      sync.Mutex
	session Session
}

type memoryManager struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewMemoryManager constructs the in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{entries: make(map[int64]*entry)}
}

func (m *memoryManager) entryFor(userID int64) *entry {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.entries[userID]; ok {
		return e
	}
	e = &entry{session: Session{State: StateIdle}}
	m.entries[userID] = e
	return e
}

// Acquire locks the user's session for the duration of one update.
func (m *memoryManager) Acquire(userID int64) func() {
	e := m.entryFor(userID)
	e.mu.Lock()
	return e.mu.Unlock
}

// Get returns a copy of the session; absent users get a fresh idle one.
func (m *memoryManager) Get(userID int64) Session {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if !ok {
		return Session{State: StateIdle}
	}
	return e.session
}

// SetState transitions the FSM state, preserving drafts.
func (m *memoryManager) SetState(userID int64, st State) {
	e := m.entryFor(userID)
	e.session.State = st
}

// GetState returns the current FSM state, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	return m.Get(userID).State
}

// InProgress reports whether the user is inside a multi-step flow.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// Update applies fn to the live session.
func (m *memoryManager) Update(userID int64, fn func(*Session)) {
	if fn == nil {
		return
	}
	e := m.entryFor(userID)
	fn(&e.session)
}

// Clear resets the session to idle and drops every draft.
func (m *memoryManager) Clear(userID int64) {
	e := m.entryFor(userID)
	e.session = Session{State: StateIdle}
}

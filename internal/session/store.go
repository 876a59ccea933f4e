package session

import (
	"sync"
	"time"

	"careerlens/internal/errors"
	"careerlens/internal/types"
)

// Store is the session storage interface. Implementations must be safe
// for concurrent use. Update is atomic per call, but two concurrent
// read-modify-write API calls against the same session still race:
// last write wins.
type Store interface {
	Get(id string) (*Session, error)
	Set(s *Session)
	Update(id string, patch Patch) *Session
	Delete(id string) error
	Count() int
}

// MemoryStore is the in-process Store. Sessions live until explicitly
// deleted; eviction is a collaborator concern, not the store's.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Get returns a copy of the session, or SESSION_NOT_FOUND
func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.NewSessionError(errors.ErrCodeSessionNotFound,
			"Session not found", nil).WithContext("session_id", id)
	}
	return s.clone(), nil
}

// Set stores the session, replacing any previous session with the same id
func (m *MemoryStore) Set(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := s.clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	m.sessions[stored.ID] = stored
}

// Update applies a shallow merge to the session and returns a copy of
// the result. A missing session is created fresh so that a Patch against
// an unknown id never fails.
func (m *MemoryStore) Update(id string, patch Patch) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			ID:        id,
			Jobs:      []types.JobListing{},
			SavedJobs: []types.SavedJob{},
			CreatedAt: time.Now(),
		}
		m.sessions[id] = s
	}

	if patch.ResumeText != nil {
		s.ResumeText = *patch.ResumeText
	}
	if patch.Profile != nil {
		profile := *patch.Profile
		s.Profile = &profile
	}
	if patch.Jobs != nil {
		s.Jobs = append([]types.JobListing(nil), *patch.Jobs...)
	}
	if patch.SavedJobs != nil {
		s.SavedJobs = append([]types.SavedJob(nil), *patch.SavedJobs...)
	}
	s.UpdatedAt = time.Now()

	return s.clone()
}

// Delete removes the session, or returns SESSION_NOT_FOUND
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return errors.NewSessionError(errors.ErrCodeSessionNotFound,
			"Session not found", nil).WithContext("session_id", id)
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of live sessions
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Package session provides ports.SessionStore backends for caller sessions:
// in-process memory, a signed cookie, and redis.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

const entityName = "session"

type memoryEntry struct {
	sess    domain.CallerSession
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ ports.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements ports.SessionStore.
func (s *MemoryStore) Get(_ context.Context, key string) (*domain.CallerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, domain.NewNotFoundError(entityName, "")
	}

	if !s.now().Before(e.expires) {
		delete(s.entries, key)

		return nil, domain.NewNotFoundError(entityName, "")
	}

	sess := e.sess

	return &sess, nil
}

// Set implements ports.SessionStore.
func (s *MemoryStore) Set(_ context.Context, key string, sess *domain.CallerSession, ttl time.Duration) (string, error) {
	if key == "" {
		key = uuid.NewString()
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{sess: *sess, expires: s.now().Add(ttl)}
	s.mu.Unlock()

	return key, nil
}

// Expire implements ports.SessionStore.
func (s *MemoryStore) Expire(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Prune drops expired sessions and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
			removed++
		}
	}

	return removed
}

// RunJanitor prunes expired sessions every interval until ctx is done.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune()
		}
	}
}

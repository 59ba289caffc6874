package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory ActiveOrganizationStore. Used when Redis is
// not configured and in tests; selections do not survive restarts and are
// not shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	pointer map[string]uuid.UUID
}

// NewMemoryStore creates a new in-memory active organization store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pointer: make(map[string]uuid.UUID)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orgID, ok := s.pointer[sessionID]
	return orgID, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID string, orgID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pointer[sessionID] = orgID
	return nil
}

// Compile-time check
var _ ActiveOrganizationStore = (*MemoryStore)(nil)

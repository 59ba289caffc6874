package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/warewise/server/internal/domain/session"
)

const (
	activeOrgKeyPrefix = "session:active_org:"
	activeOrgTTL       = 7 * 24 * time.Hour
)

// ActiveOrganizationStore implements session.ActiveOrganizationStore on
// Redis. The pointer expires with the session token lifetime.
type ActiveOrganizationStore struct {
	client redis.UniversalClient
}

// NewActiveOrganizationStore creates a new active organization store.
func NewActiveOrganizationStore(client redis.UniversalClient) *ActiveOrganizationStore {
	return &ActiveOrganizationStore{client: client}
}

func (s *ActiveOrganizationStore) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	raw, err := s.client.Get(ctx, activeOrgKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	orgID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse active organization id: %w", err)
	}
	return orgID, true, nil
}

func (s *ActiveOrganizationStore) Set(ctx context.Context, sessionID string, orgID uuid.UUID) error {
	return s.client.Set(ctx, activeOrgKeyPrefix+sessionID, orgID.String(), activeOrgTTL).Err()
}

// Compile-time check
var _ session.ActiveOrganizationStore = (*ActiveOrganizationStore)(nil)

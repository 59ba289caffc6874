package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warewise/server/internal/domain/identity"
)

const (
	oauthStateKeyPrefix = "oauth:state:"
	oauthStateTTL       = 10 * time.Minute
)

// OAuthStateStore implements identity.StateStore on Redis.
type OAuthStateStore struct {
	client redis.UniversalClient
}

// NewOAuthStateStore creates a new OAuth state store adapter.
func NewOAuthStateStore(client redis.UniversalClient) *OAuthStateStore {
	return &OAuthStateStore{client: client}
}

func (s *OAuthStateStore) Set(ctx context.Context, state string, provider string) error {
	return s.client.Set(ctx, oauthStateKeyPrefix+state, provider, oauthStateTTL).Err()
}

// Get returns the provider recorded for the state. Unknown or expired states
// return an empty provider, not an error.
func (s *OAuthStateStore) Get(ctx context.Context, state string) (string, error) {
	provider, err := s.client.Get(ctx, oauthStateKeyPrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return provider, nil
}

func (s *OAuthStateStore) Delete(ctx context.Context, state string) error {
	return s.client.Del(ctx, oauthStateKeyPrefix+state).Err()
}

// Compile-time check
var _ identity.StateStore = (*OAuthStateStore)(nil)

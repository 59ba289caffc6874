package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/warewise/server/internal/model"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *model.User) error

	// FindByID retrieves a user by ID. A clean miss is (nil, nil).
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByEmail retrieves a user by email. A clean miss is (nil, nil).
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Update updates a user.
	Update(ctx context.Context, user *model.User) error
}

// AccountRepository defines the interface for linked-account persistence.
type AccountRepository interface {
	// Link creates a linked external account.
	Link(ctx context.Context, account *model.Account) error

	// FindByProvider retrieves a linked account by provider identity.
	// A clean miss is (nil, nil).
	FindByProvider(ctx context.Context, provider model.AccountProvider, providerAccountID string) (*model.Account, error)
}

// OAuthProvider exchanges an authorization code for an external user profile.
type OAuthProvider interface {
	// Name returns the provider identifier.
	Name() model.AccountProvider

	// AuthURL returns the provider authorization URL for a state value.
	AuthURL(state string) string

	// Exchange trades an authorization code for the external profile.
	Exchange(ctx context.Context, code string) (*ExternalProfile, error)
}

// ExternalProfile is the profile an OAuth provider reports.
type ExternalProfile struct {
	ProviderAccountID string
	Email             string
	Name              string
	AvatarURL         string
	Scopes            []string
}

// StateStore holds short-lived OAuth state tokens.
type StateStore interface {
	Set(ctx context.Context, state string, provider string) error
	Get(ctx context.Context, state string) (string, error)
	Delete(ctx context.Context, state string) error
}

package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/warewise/server/internal/domain/session"
	"github.com/warewise/server/internal/model"
)

const minPasswordLength = 8

// trustedProviders lists providers whose verified email may be linked to an
// existing account without further confirmation.
var trustedProviders = map[model.AccountProvider]bool{
	model.AccountProviderGoogle: true,
}

// Domain provides identity business logic: registration, login, social
// login with account linking, and session introspection.
type Domain struct {
	users     UserRepository
	accounts  AccountRepository
	providers map[string]OAuthProvider
	states    StateStore
	jwt       *JWTManager
	logger    *zap.Logger
}

// NewDomain creates the identity domain service.
func NewDomain(
	users UserRepository,
	accounts AccountRepository,
	providers []OAuthProvider,
	states StateStore,
	jwt *JWTManager,
	logger *zap.Logger,
) *Domain {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]OAuthProvider, len(providers))
	for _, p := range providers {
		byName[string(p.Name())] = p
	}
	return &Domain{
		users:     users,
		accounts:  accounts,
		providers: byName,
		states:    states,
		jwt:       jwt,
		logger:    logger,
	}
}

// RegisterInput holds email registration parameters.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Session is the result of a successful login or registration.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new email/password user and returns a session.
func (d *Domain) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	email := normalizeEmail(input.Email)

	existing, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: &hashStr,
	}
	if err := d.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	d.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return d.issueSession(user)
}

// Login authenticates an email/password user and returns a session.
func (d *Domain) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := d.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !user.IsEmailUser() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return d.issueSession(user)
}

// BeginOAuth starts a social login flow and returns the provider redirect URL.
func (d *Domain) BeginOAuth(ctx context.Context, provider string) (string, error) {
	p, ok := d.providers[provider]
	if !ok {
		return "", fmt.Errorf("identity: unknown provider %q", provider)
	}
	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	if err := d.states.Set(ctx, state, provider); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return p.AuthURL(state), nil
}

// CompleteOAuth finishes a social login flow. For trusted providers the
// external profile may be linked to an existing user with the same email;
// otherwise a matching email without a linked account is rejected.
func (d *Domain) CompleteOAuth(ctx context.Context, provider, state, code string) (*Session, error) {
	p, ok := d.providers[provider]
	if !ok {
		return nil, fmt.Errorf("identity: unknown provider %q", provider)
	}

	storedProvider, err := d.states.Get(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("load oauth state: %w", err)
	}
	if storedProvider != provider {
		return nil, ErrInvalidState
	}
	if err := d.states.Delete(ctx, state); err != nil {
		d.logger.Warn("delete oauth state", zap.Error(err))
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}

	user, err := d.resolveExternalUser(ctx, model.AccountProvider(provider), profile)
	if err != nil {
		return nil, err
	}
	return d.issueSession(user)
}

func (d *Domain) resolveExternalUser(ctx context.Context, provider model.AccountProvider, profile *ExternalProfile) (*model.User, error) {
	account, err := d.accounts.FindByProvider(ctx, provider, profile.ProviderAccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account != nil {
		user, err := d.users.FindByID(ctx, account.UserID)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		return user, nil
	}

	email := normalizeEmail(profile.Email)
	user, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		user = &model.User{
			ID:        uuid.New(),
			Email:     email,
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
		}
		if err := d.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		d.logger.Info("user created from social login",
			zap.String("user_id", user.ID.String()),
			zap.String("provider", string(provider)))
	} else if !trustedProviders[provider] {
		// Existing email with no linked account: only trusted providers
		// may attach to it.
		return nil, ErrUntrustedProvider
	}

	acct := &model.Account{
		ID:                uuid.New(),
		UserID:            user.ID,
		Provider:          provider,
		ProviderAccountID: profile.ProviderAccountID,
		Scopes:            pq.StringArray(profile.Scopes),
	}
	if err := d.accounts.Link(ctx, acct); err != nil {
		return nil, fmt.Errorf("link account: %w", err)
	}

	d.logger.Info("account linked",
		zap.String("user_id", user.ID.String()),
		zap.String("provider", string(provider)))
	return user, nil
}

// GetSession validates a session token and returns the caller identity.
func (d *Domain) GetSession(ctx context.Context, token string) (*session.Identity, error) {
	claims, err := d.jwt.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}
	user, err := d.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &session.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: claims.SessionID(),
	}, nil
}

// GetUser returns a user by id.
func (d *Domain) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := d.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (d *Domain) issueSession(user *model.User) (*Session, error) {
	token, expiresAt, err := d.jwt.GenerateSessionToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

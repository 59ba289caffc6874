package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warewise/server/internal/domain/identity"
	"github.com/warewise/server/internal/domain/organization"
	"github.com/warewise/server/internal/model"
)

// UserAdapter implements identity.UserRepository. It also serves as the
// organization.UserLookup used when resolving invitees and members.
type UserAdapter struct {
	db *gorm.DB
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(db *gorm.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

func (a *UserAdapter) Create(ctx context.Context, u *model.User) error {
	err := dbFromContext(ctx, a.db).WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return identity.ErrEmailAlreadyExists
	}
	return err
}

func (a *UserAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (a *UserAdapter) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (a *UserAdapter) Update(ctx context.Context, u *model.User) error {
	return dbFromContext(ctx, a.db).WithContext(ctx).Save(u).Error
}

// AccountAdapter implements identity.AccountRepository.
type AccountAdapter struct {
	db *gorm.DB
}

// NewAccountAdapter creates a new linked-account adapter.
func NewAccountAdapter(db *gorm.DB) *AccountAdapter {
	return &AccountAdapter{db: db}
}

func (a *AccountAdapter) Link(ctx context.Context, account *model.Account) error {
	return dbFromContext(ctx, a.db).WithContext(ctx).Create(account).Error
}

func (a *AccountAdapter) FindByProvider(ctx context.Context, provider model.AccountProvider, providerAccountID string) (*model.Account, error) {
	var account model.Account
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("provider = ? AND provider_account_id = ?", provider, providerAccountID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Compile-time interface checks
var (
	_ identity.UserRepository    = (*UserAdapter)(nil)
	_ identity.AccountRepository = (*AccountAdapter)(nil)
	_ organization.UserLookup    = (*UserAdapter)(nil)
)

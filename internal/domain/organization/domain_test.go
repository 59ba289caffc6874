package organization

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/domain/access"
	"github.com/warewise/server/internal/model"
)

// Mock implementations

type mockOrgDB struct {
	mock.Mock
}

func (m *mockOrgDB) Create(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgDB) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgDB) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Organization), args.Error(1)
}

func (m *mockOrgDB) CountCreatedBy(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockOrgDB) Update(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

type mockMemberDB struct {
	mock.Mock
}

func (m *mockMemberDB) Add(ctx context.Context, member *model.Membership) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberDB) Find(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockMemberDB) FindWithUsers(ctx context.Context, orgID uuid.UUID) ([]*model.MembershipWithUser, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MembershipWithUser), args.Error(1)
}

func (m *mockMemberDB) Remove(ctx context.Context, orgID, userID uuid.UUID) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}

func (m *mockMemberDB) Count(ctx context.Context, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *mockMemberDB) CountOwners(ctx context.Context, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

type mockInvitationDB struct {
	mock.Mock
}

func (m *mockInvitationDB) Create(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *mockInvitationDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) FindByOrganization(ctx context.Context, orgID uuid.UUID, status *model.InvitationStatus) ([]*model.Invitation, error) {
	args := m.Called(ctx, orgID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) FindByEmail(ctx context.Context, email string, status *model.InvitationStatus) ([]*model.Invitation, error) {
	args := m.Called(ctx, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserLookup) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockTransaction struct {
	mock.Mock
}

func (m *mockTransaction) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Execute the function directly; tests do not need real transactions.
	return fn(ctx)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendInvitationEmail(ctx context.Context, n *InvitationNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type mockLogoStore struct {
	mock.Mock
}

func (m *mockLogoStore) Put(ctx context.Context, orgID uuid.UUID, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, orgID, contentType, data)
	return args.String(0), args.Error(1)
}

// Test helper

func setupDomain() (*Domain, *mockOrgDB, *mockMemberDB, *mockInvitationDB, *mockUserLookup, *mockNotifier) {
	orgDB := new(mockOrgDB)
	memberDB := new(mockMemberDB)
	invitationDB := new(mockInvitationDB)
	users := new(mockUserLookup)
	notifier := new(mockNotifier)

	guard := access.NewGuard(memberDB, access.DefaultPolicy(), zap.NewNop())

	domain := NewDomain(
		orgDB,
		memberDB,
		invitationDB,
		users,
		new(mockTransaction),
		notifier,
		nil,
		guard,
		DefaultConfig(),
		zap.NewNop(),
	)

	return domain, orgDB, memberDB, invitationDB, users, notifier
}

func ownerMembership(orgID, userID uuid.UUID) *model.Membership {
	return &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleOwner}
}

// Tests

func TestDomain_CreateOrganization(t *testing.T) {
	t.Run("success_creator_becomes_owner", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme-goods").Return(nil, nil)
		orgDB.On("Create", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)
		memberDB.On("Add", ctx, mock.MatchedBy(func(m *model.Membership) bool {
			return m.UserID == ownerID && m.Role == model.RoleOwner
		})).Return(nil)

		org, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{Name: "Acme Goods"})

		require.NoError(t, err)
		assert.Equal(t, "Acme Goods", org.Name)
		assert.Equal(t, "acme-goods", org.Slug)

		orgDB.AssertExpectations(t)
		memberDB.AssertExpectations(t)
	})

	t.Run("explicit_slug", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(nil, nil)
		orgDB.On("Create", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)
		memberDB.On("Add", ctx, mock.AnythingOfType("*model.Membership")).Return(nil)

		org, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{Name: "Acme Goods", Slug: "acme"})

		require.NoError(t, err)
		assert.Equal(t, "acme", org.Slug)
	})

	t.Run("invalid_name", func(t *testing.T) {
		domain, _, _, _, _, _ := setupDomain()

		_, err := domain.CreateOrganization(context.Background(), uuid.New(), &CreateOrganizationInput{Name: "x"})
		assert.Equal(t, ErrInvalidName, err)

		_, err = domain.CreateOrganization(context.Background(), uuid.New(), &CreateOrganizationInput{Name: strings.Repeat("a", 51)})
		assert.Equal(t, ErrInvalidName, err)
	})

	t.Run("invalid_slug", func(t *testing.T) {
		domain, _, _, _, _, _ := setupDomain()

		for _, slug := range []string{"Has-Caps", "under_score", "-leading", "trailing-", "a"} {
			_, err := domain.CreateOrganization(context.Background(), uuid.New(), &CreateOrganizationInput{Name: "Acme", Slug: slug})
			assert.Equal(t, ErrInvalidSlug, err, "slug %q", slug)
		}
	})

	t.Run("organization_limit_reached", func(t *testing.T) {
		domain, orgDB, _, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(5, nil)

		_, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{Name: "One More"})
		assert.Equal(t, ErrOrganizationLimit, err)
	})

	t.Run("duplicate_slug", func(t *testing.T) {
		domain, orgDB, _, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(1, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(&model.Organization{ID: uuid.New(), Slug: "acme"}, nil)

		_, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{Name: "Acme", Slug: "acme"})
		assert.Equal(t, ErrDuplicateSlug, err)
	})

	t.Run("membership_failure_rolls_back", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(nil, nil)
		orgDB.On("Create", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)
		memberDB.On("Add", ctx, mock.AnythingOfType("*model.Membership")).Return(assert.AnError)

		_, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{Name: "Acme", Slug: "acme"})
		assert.Error(t, err)
	})

	t.Run("logo_too_large", func(t *testing.T) {
		domain, orgDB, _, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(nil, nil)

		_, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{
			Name: "Acme",
			Slug: "acme",
			Logo: &LogoUpload{ContentType: "image/png", Data: make([]byte, (1<<20)+1)},
		})
		assert.Equal(t, ErrLogoTooLarge, err)
	})

	t.Run("logo_at_limit_accepted", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(nil, nil)
		orgDB.On("Create", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)
		memberDB.On("Add", ctx, mock.AnythingOfType("*model.Membership")).Return(nil)

		_, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{
			Name: "Acme",
			Slug: "acme",
			Logo: &LogoUpload{ContentType: "image/png", Data: make([]byte, int(DefaultConfig().MaxLogoBytes))},
		})
		require.NoError(t, err)
	})

	t.Run("logo_inlined_without_store", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()

		orgDB.On("CountCreatedBy", ctx, ownerID).Return(0, nil)
		orgDB.On("FindBySlug", ctx, "acme").Return(nil, nil)
		orgDB.On("Create", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)
		memberDB.On("Add", ctx, mock.AnythingOfType("*model.Membership")).Return(nil)

		org, err := domain.CreateOrganization(ctx, ownerID, &CreateOrganizationInput{
			Name: "Acme",
			Slug: "acme",
			Logo: &LogoUpload{ContentType: "image/png", Data: []byte{0x89, 0x50}},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(org.LogoURL, "data:image/png;base64,"))
	})
}

func TestDomain_GetOrganization(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	requesterID := uuid.New()

	t.Run("member_sees_organization", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, requesterID).Return(ownerMembership(orgID, requesterID), nil)
		orgDB.On("FindByID", ctx, orgID).Return(&model.Organization{ID: orgID, Name: "Acme"}, nil)

		org, err := domain.GetOrganization(ctx, requesterID, orgID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", org.Name)
	})

	t.Run("non_member_sees_not_found", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, requesterID).Return(nil, nil)

		_, err := domain.GetOrganization(ctx, requesterID, orgID)
		assert.Equal(t, ErrOrganizationNotFound, err)
	})
}

func TestDomain_UpdateOrganization(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	ownerID := uuid.New()

	t.Run("owner_updates_name", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		orgDB.On("FindByID", ctx, orgID).Return(&model.Organization{ID: orgID, Name: "Old", Slug: "old"}, nil)
		orgDB.On("Update", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)

		name := "New Name"
		org, err := domain.UpdateOrganization(ctx, ownerID, orgID, &UpdateOrganizationInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "New Name", org.Name)
		assert.Equal(t, "old", org.Slug)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		billerID := uuid.New()

		memberDB.On("Find", ctx, orgID, billerID).Return(&model.Membership{
			OrganizationID: orgID, UserID: billerID, Role: model.RoleBiller,
		}, nil)

		name := "New Name"
		_, err := domain.UpdateOrganization(ctx, billerID, orgID, &UpdateOrganizationInput{Name: &name})
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("slug_change_to_taken_slug", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		orgDB.On("FindByID", ctx, orgID).Return(&model.Organization{ID: orgID, Name: "Acme", Slug: "acme"}, nil)
		orgDB.On("FindBySlug", ctx, "taken").Return(&model.Organization{ID: uuid.New(), Slug: "taken"}, nil)

		slug := "taken"
		_, err := domain.UpdateOrganization(ctx, ownerID, orgID, &UpdateOrganizationInput{Slug: &slug})
		assert.Equal(t, ErrDuplicateSlug, err)
	})

	t.Run("same_slug_is_noop", func(t *testing.T) {
		domain, orgDB, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		orgDB.On("FindByID", ctx, orgID).Return(&model.Organization{ID: orgID, Name: "Acme", Slug: "acme"}, nil)
		orgDB.On("Update", ctx, mock.AnythingOfType("*model.Organization")).Return(nil)

		slug := "acme"
		org, err := domain.UpdateOrganization(ctx, ownerID, orgID, &UpdateOrganizationInput{Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "acme", org.Slug)
		orgDB.AssertNotCalled(t, "FindBySlug", ctx, "acme")
	})
}

func TestDomain_RemoveMember(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	ownerID := uuid.New()

	t.Run("owner_removes_member", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		targetID := uuid.New()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		memberDB.On("Find", ctx, orgID, targetID).Return(&model.Membership{
			OrganizationID: orgID, UserID: targetID, Role: model.RoleBiller,
		}, nil)
		memberDB.On("Remove", ctx, orgID, targetID).Return(nil)

		err := domain.RemoveMember(ctx, ownerID, orgID, targetID.String())
		require.NoError(t, err)
		memberDB.AssertExpectations(t)
	})

	t.Run("removes_member_by_email", func(t *testing.T) {
		domain, _, memberDB, _, users, _ := setupDomain()
		targetID := uuid.New()

		users.On("FindByEmail", ctx, "target@example.com").Return(&model.User{ID: targetID, Email: "target@example.com"}, nil)
		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		memberDB.On("Find", ctx, orgID, targetID).Return(&model.Membership{
			OrganizationID: orgID, UserID: targetID, Role: model.RoleInventoryManager,
		}, nil)
		memberDB.On("Remove", ctx, orgID, targetID).Return(nil)

		err := domain.RemoveMember(ctx, ownerID, orgID, "Target@Example.com")
		require.NoError(t, err)
	})

	t.Run("member_leaves_voluntarily", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		selfID := uuid.New()

		// No permission check for self-removal, only the membership lookup.
		memberDB.On("Find", ctx, orgID, selfID).Return(&model.Membership{
			OrganizationID: orgID, UserID: selfID, Role: model.RoleBiller,
		}, nil)
		memberDB.On("Remove", ctx, orgID, selfID).Return(nil)

		err := domain.RemoveMember(ctx, selfID, orgID, selfID.String())
		require.NoError(t, err)
	})

	t.Run("last_owner_cannot_be_removed", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		memberDB.On("CountOwners", ctx, orgID).Return(1, nil)

		err := domain.RemoveMember(ctx, ownerID, orgID, ownerID.String())
		assert.Equal(t, ErrLastOwner, err)
		memberDB.AssertNotCalled(t, "Remove", ctx, orgID, ownerID)
	})

	t.Run("owner_leaves_when_another_owner_remains", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		memberDB.On("CountOwners", ctx, orgID).Return(2, nil)
		memberDB.On("Remove", ctx, orgID, ownerID).Return(nil)

		err := domain.RemoveMember(ctx, ownerID, orgID, ownerID.String())
		require.NoError(t, err)
	})

	t.Run("biller_cannot_remove_others", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		billerID := uuid.New()
		targetID := uuid.New()

		memberDB.On("Find", ctx, orgID, billerID).Return(&model.Membership{
			OrganizationID: orgID, UserID: billerID, Role: model.RoleBiller,
		}, nil)

		err := domain.RemoveMember(ctx, billerID, orgID, targetID.String())
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("target_not_a_member", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		targetID := uuid.New()

		memberDB.On("Find", ctx, orgID, ownerID).Return(ownerMembership(orgID, ownerID), nil)
		memberDB.On("Find", ctx, orgID, targetID).Return(nil, nil)

		err := domain.RemoveMember(ctx, ownerID, orgID, targetID.String())
		assert.Equal(t, ErrMembershipNotFound, err)
	})
}

func TestDomain_ListMembers(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("member_lists_members", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		requesterID := uuid.New()

		memberDB.On("Find", ctx, orgID, requesterID).Return(&model.Membership{
			OrganizationID: orgID, UserID: requesterID, Role: model.RoleBiller,
		}, nil)
		memberDB.On("FindWithUsers", ctx, orgID).Return([]*model.MembershipWithUser{
			{Membership: model.Membership{OrganizationID: orgID, Role: model.RoleOwner}},
		}, nil)

		members, err := domain.ListMembers(ctx, requesterID, orgID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("non_member_forbidden", func(t *testing.T) {
		domain, _, memberDB, _, _, _ := setupDomain()
		requesterID := uuid.New()

		memberDB.On("Find", ctx, orgID, requesterID).Return(nil, nil)

		_, err := domain.ListMembers(ctx, requesterID, orgID)
		assert.Equal(t, ErrForbidden, err)
	})
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme Goods", "acme-goods"},
		{"punctuation", "Warehouse & Co.", "warehouse-co"},
		{"collapses_runs", "A   B", "a-b"},
		{"trims_hyphens", "  Acme  ", "acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateSlug(tt.in))
		})
	}

	t.Run("truncates_long_names", func(t *testing.T) {
		slug := generateSlug(strings.Repeat("a ", 60))
		assert.LessOrEqual(t, len(slug), 50)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.OrganizationLimit)
	assert.Equal(t, 100, cfg.MembershipLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.InvitationExpiry)
	assert.Equal(t, int64(1<<20), cfg.MaxLogoBytes)
}

package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/model"
)

type mockMembershipLookup struct {
	mock.Mock
}

func (m *mockMembershipLookup) Find(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func TestGuard_Authorize(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()

	t.Run("member_with_permission", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		member := &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleOwner}
		lookup.On("Find", ctx, orgID, userID).Return(member, nil)

		err := guard.Authorize(ctx, userID, orgID, ResourceInvitation, ActionCreate)
		require.NoError(t, err)
	})

	t.Run("member_without_permission", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		member := &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleBiller}
		lookup.On("Find", ctx, orgID, userID).Return(member, nil)

		err := guard.Authorize(ctx, userID, orgID, ResourceMember, ActionDelete)
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("non_member_denied", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		lookup.On("Find", ctx, orgID, userID).Return(nil, nil)

		err := guard.Authorize(ctx, userID, orgID, ResourceInventory, ActionRead)
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("lookup_failure_fails_closed", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		lookup.On("Find", ctx, orgID, userID).Return(nil, errors.New("connection reset"))

		err := guard.Authorize(ctx, userID, orgID, ResourceInventory, ActionRead)
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("unknown_role_denied", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		member := &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.Role("ghost")}
		lookup.On("Find", ctx, orgID, userID).Return(member, nil)

		err := guard.Authorize(ctx, userID, orgID, ResourceInventory, ActionRead)
		assert.Equal(t, ErrForbidden, err)
	})
}

type recordedDecision struct {
	resource, action string
	allowed          bool
}

type fakeRecorder struct {
	decisions []recordedDecision
}

func (r *fakeRecorder) RecordAuthzDecision(resource, action string, allowed bool) {
	r.decisions = append(r.decisions, recordedDecision{resource, action, allowed})
}

func TestGuard_RecordsDecisions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()

	lookup := new(mockMembershipLookup)
	rec := &fakeRecorder{}
	guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop()).WithRecorder(rec)

	member := &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleBiller}
	lookup.On("Find", ctx, orgID, userID).Return(member, nil)

	require.NoError(t, guard.Authorize(ctx, userID, orgID, ResourceBilling, ActionManage))
	assert.Equal(t, ErrForbidden, guard.Authorize(ctx, userID, orgID, ResourceMember, ActionDelete))

	require.Len(t, rec.decisions, 2)
	assert.Equal(t, recordedDecision{"billing", "manage", true}, rec.decisions[0])
	assert.Equal(t, recordedDecision{"member", "delete", false}, rec.decisions[1])
}

func TestGuard_Role(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()

	t.Run("member", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		member := &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleInventoryManager}
		lookup.On("Find", ctx, orgID, userID).Return(member, nil)

		role, err := guard.Role(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleInventoryManager, role)
	})

	t.Run("non_member", func(t *testing.T) {
		lookup := new(mockMembershipLookup)
		guard := NewGuard(lookup, DefaultPolicy(), zap.NewNop())

		lookup.On("Find", ctx, orgID, userID).Return(nil, nil)

		_, err := guard.Role(ctx, userID, orgID)
		assert.Equal(t, ErrForbidden, err)
	})
}

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warewise/server/internal/model"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		role     model.Role
		resource Resource
		action   Action
		allowed  bool
	}{
		{"owner_updates_organization", model.RoleOwner, ResourceOrganization, ActionUpdate, true},
		{"owner_deletes_organization", model.RoleOwner, ResourceOrganization, ActionDelete, true},
		{"owner_creates_member", model.RoleOwner, ResourceMember, ActionCreate, true},
		{"owner_removes_member", model.RoleOwner, ResourceMember, ActionDelete, true},
		{"owner_creates_invitation", model.RoleOwner, ResourceInvitation, ActionCreate, true},
		{"owner_cancels_invitation", model.RoleOwner, ResourceInvitation, ActionCancel, true},
		{"owner_manages_inventory", model.RoleOwner, ResourceInventory, ActionManage, true},
		{"owner_processes_billing", model.RoleOwner, ResourceBilling, ActionProcess, true},

		{"biller_reads_billing", model.RoleBiller, ResourceBilling, ActionRead, true},
		{"biller_manages_billing", model.RoleBiller, ResourceBilling, ActionManage, true},
		{"biller_processes_billing", model.RoleBiller, ResourceBilling, ActionProcess, true},
		{"biller_reads_inventory", model.RoleBiller, ResourceInventory, ActionRead, true},
		{"biller_cannot_update_inventory", model.RoleBiller, ResourceInventory, ActionUpdate, false},
		{"biller_cannot_update_organization", model.RoleBiller, ResourceOrganization, ActionUpdate, false},
		{"biller_cannot_invite", model.RoleBiller, ResourceInvitation, ActionCreate, false},
		{"biller_cannot_remove_member", model.RoleBiller, ResourceMember, ActionDelete, false},

		{"inventory_manager_manages_inventory", model.RoleInventoryManager, ResourceInventory, ActionManage, true},
		{"inventory_manager_deletes_inventory", model.RoleInventoryManager, ResourceInventory, ActionDelete, true},
		{"inventory_manager_reads_billing", model.RoleInventoryManager, ResourceBilling, ActionRead, true},
		{"inventory_manager_cannot_manage_billing", model.RoleInventoryManager, ResourceBilling, ActionManage, false},
		{"inventory_manager_cannot_invite", model.RoleInventoryManager, ResourceInvitation, ActionCreate, false},
		{"inventory_manager_cannot_update_organization", model.RoleInventoryManager, ResourceOrganization, ActionUpdate, false},

		{"unknown_role_denied", model.Role("ghost"), ResourceInventory, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, policy.Allows(tt.role, tt.resource, tt.action))
		})
	}
}

func TestNewPolicy_Validation(t *testing.T) {
	t.Run("unknown_role", func(t *testing.T) {
		_, err := NewPolicy(map[model.Role]Statement{
			model.Role("superuser"): {ResourceBilling: {ActionRead}},
		})
		require.Error(t, err)
	})

	t.Run("unknown_resource", func(t *testing.T) {
		_, err := NewPolicy(map[model.Role]Statement{
			model.RoleOwner: {Resource("warehouse"): {ActionRead}},
		})
		require.Error(t, err)
	})

	t.Run("action_not_valid_for_resource", func(t *testing.T) {
		// organization has no read action in the vocabulary
		_, err := NewPolicy(map[model.Role]Statement{
			model.RoleOwner: {ResourceOrganization: {ActionRead}},
		})
		require.Error(t, err)
	})

	t.Run("valid_table", func(t *testing.T) {
		p, err := NewPolicy(map[model.Role]Statement{
			model.RoleBiller: {ResourceBilling: {ActionRead}},
		})
		require.NoError(t, err)
		assert.True(t, p.Allows(model.RoleBiller, ResourceBilling, ActionRead))
		assert.False(t, p.Allows(model.RoleBiller, ResourceBilling, ActionManage))
	})
}

func TestIsValidInviteRole(t *testing.T) {
	assert.True(t, IsValidInviteRole(model.RoleOwner))
	assert.True(t, IsValidInviteRole(model.RoleBiller))
	assert.True(t, IsValidInviteRole(model.RoleInventoryManager))
	assert.False(t, IsValidInviteRole(model.Role("admin")))
	assert.False(t, IsValidInviteRole(model.Role("")))
}

package access

import "github.com/warewise/server/internal/model"

// ownerStatement carries the full organization-management set plus full
// inventory and billing access.
var ownerStatement = Statement{
	ResourceOrganization: {ActionUpdate, ActionDelete},
	ResourceMember:       {ActionCreate, ActionUpdate, ActionDelete},
	ResourceInvitation:   {ActionCreate, ActionCancel},
	ResourceInventory:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage},
	ResourceBilling:      {ActionRead, ActionManage, ActionProcess},
}

var billerStatement = Statement{
	ResourceBilling:   {ActionRead, ActionManage, ActionProcess},
	ResourceInventory: {ActionRead},
}

var inventoryManagerStatement = Statement{
	ResourceInventory: {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage},
	ResourceBilling:   {ActionRead},
}

// DefaultPolicy returns the built-in role table. Roles are fixed for the
// process lifetime; a malformed table is a programming error and panics at
// startup rather than failing per-call.
func DefaultPolicy() *Policy {
	return MustNewPolicy(map[model.Role]Statement{
		model.RoleOwner:            ownerStatement,
		model.RoleBiller:           billerStatement,
		model.RoleInventoryManager: inventoryManagerStatement,
	})
}

// ValidInviteRoles returns the roles that can be assigned via invitation.
func ValidInviteRoles() []model.Role {
	return []model.Role{model.RoleOwner, model.RoleBiller, model.RoleInventoryManager}
}

// IsValidInviteRole checks if a role can be assigned via invitation.
func IsValidInviteRole(r model.Role) bool {
	for _, valid := range ValidInviteRoles() {
		if r == valid {
			return true
		}
	}
	return false
}

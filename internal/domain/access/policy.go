// Package access defines the permission vocabulary, the built-in role
// statements, and the authorization guard.
package access

import (
	"fmt"

	"github.com/warewise/server/internal/model"
)

// Resource is a permission resource category.
type Resource string

const (
	ResourceOrganization Resource = "organization"
	ResourceMember       Resource = "member"
	ResourceInvitation   Resource = "invitation"
	ResourceInventory    Resource = "inventory"
	ResourceBilling      Resource = "billing"
)

// Action is an operation on a resource.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionManage  Action = "manage"
	ActionCancel  Action = "cancel"
	ActionProcess Action = "process"
)

// resourceActions enumerates the valid actions per resource. Statements
// referencing anything outside this table are rejected at construction.
var resourceActions = map[Resource][]Action{
	ResourceOrganization: {ActionUpdate, ActionDelete},
	ResourceMember:       {ActionCreate, ActionUpdate, ActionDelete},
	ResourceInvitation:   {ActionCreate, ActionCancel},
	ResourceInventory:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage},
	ResourceBilling:      {ActionRead, ActionManage, ActionProcess},
}

// Statement maps resources to the set of actions a role may perform.
type Statement map[Resource][]Action

// Policy is an immutable, validated role-to-statement table. It is built once
// at process start; lookups are pure and never touch I/O.
type Policy struct {
	statements map[model.Role]map[Resource]map[Action]struct{}
}

// NewPolicy builds a policy from role statements, validating every role,
// resource, and action against the closed enumerations.
func NewPolicy(statements map[model.Role]Statement) (*Policy, error) {
	p := &Policy{
		statements: make(map[model.Role]map[Resource]map[Action]struct{}, len(statements)),
	}

	for role, stmt := range statements {
		if !role.IsValid() {
			return nil, fmt.Errorf("access: unknown role %q", role)
		}

		byResource := make(map[Resource]map[Action]struct{}, len(stmt))
		for resource, actions := range stmt {
			valid, ok := resourceActions[resource]
			if !ok {
				return nil, fmt.Errorf("access: unknown resource %q in role %q", resource, role)
			}

			set := make(map[Action]struct{}, len(actions))
			for _, action := range actions {
				if !containsAction(valid, action) {
					return nil, fmt.Errorf("access: action %q not valid for resource %q in role %q", action, resource, role)
				}
				set[action] = struct{}{}
			}
			byResource[resource] = set
		}
		p.statements[role] = byResource
	}

	return p, nil
}

// MustNewPolicy builds a policy and panics on a malformed statement table.
// Intended for the built-in table at startup.
func MustNewPolicy(statements map[model.Role]Statement) *Policy {
	p, err := NewPolicy(statements)
	if err != nil {
		panic(err)
	}
	return p
}

// Allows reports whether the role may perform the action on the resource.
// Anything not explicitly granted is denied.
func (p *Policy) Allows(role model.Role, resource Resource, action Action) bool {
	byResource, ok := p.statements[role]
	if !ok {
		return false
	}
	actions, ok := byResource[resource]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// Roles returns the roles defined in the policy.
func (p *Policy) Roles() []model.Role {
	roles := make([]model.Role, 0, len(p.statements))
	for role := range p.statements {
		roles = append(roles, role)
	}
	return roles
}

func containsAction(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

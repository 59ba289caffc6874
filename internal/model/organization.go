package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a member's role within an organization.
type Role string

const (
	RoleOwner            Role = "owner"
	RoleBiller           Role = "biller"
	RoleInventoryManager Role = "inventoryManager"
)

// IsValid checks if the role is one of the built-in roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleBiller, RoleInventoryManager:
		return true
	default:
		return false
	}
}

// Label returns the display label for the role.
func (r Role) Label() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleBiller:
		return "Biller"
	case RoleInventoryManager:
		return "Inventory Manager"
	default:
		return string(r)
	}
}

// Roles returns all built-in roles in display order.
func Roles() []Role {
	return []Role{RoleOwner, RoleBiller, RoleInventoryManager}
}

// InvitationStatus represents the stored status of an invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusCanceled InvitationStatus = "canceled"
	InvitationStatusRejected InvitationStatus = "rejected"
)

// Organization represents a tenant workspace.
type Organization struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	LogoURL   string    `json:"logo_url,omitempty" gorm:"column:logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations (not loaded by default)
	Members []Membership `json:"members,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the database table name.
func (Organization) TableName() string {
	return "organizations"
}

// Membership represents a user's membership in an organization.
type Membership struct {
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Role           Role      `json:"role" gorm:"not null"`
	JoinedAt       time.Time `json:"joined_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Membership) TableName() string {
	return "memberships"
}

// IsOwner checks if this membership carries the owner role.
func (m *Membership) IsOwner() bool {
	return m.Role == RoleOwner
}

// MembershipWithUser represents a membership enriched with user details.
type MembershipWithUser struct {
	Membership
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Invitation represents a pending offer of membership. The invitation ID doubles
// as the capability token in shareable accept links.
type Invitation struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID        `json:"organization_id" gorm:"type:uuid;not null;index"`
	InviterID      uuid.UUID        `json:"inviter_id" gorm:"type:uuid;not null"`
	InviteeEmail   string           `json:"invitee_email" gorm:"not null;index"`
	Role           Role             `json:"role" gorm:"not null"`
	Status         InvitationStatus `json:"status" gorm:"not null;default:pending"`
	ExpiresAt      time.Time        `json:"expires_at" gorm:"not null"`
	CreatedAt      time.Time        `json:"created_at"`
	AcceptedAt     *time.Time       `json:"accepted_at,omitempty"`

	// Relations (for response)
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Inviter      *User         `json:"inviter,omitempty" gorm:"foreignKey:InviterID"`
}

// TableName returns the database table name.
func (Invitation) TableName() string {
	return "invitations"
}

// IsPending returns true if the stored status is pending.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// IsExpiredAt returns true if the invitation is past its expiry at the given
// instant. Expiry is a derived state, never written back to storage.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsAcceptableAt returns true if the invitation can still be accepted at the
// given instant.
func (i *Invitation) IsAcceptableAt(now time.Time) bool {
	return i.IsPending() && !i.IsExpiredAt(now)
}

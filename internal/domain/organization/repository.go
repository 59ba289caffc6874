package organization

import (
	"context"

	"github.com/google/uuid"

	"github.com/warewise/server/internal/model"
)

// OrganizationRepository defines the interface for organization persistence.
type OrganizationRepository interface {
	// Create creates a new organization.
	Create(ctx context.Context, org *model.Organization) error

	// FindByID retrieves an organization by ID. A clean miss is (nil, nil).
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)

	// FindBySlug retrieves an organization by slug. A clean miss is (nil, nil).
	FindBySlug(ctx context.Context, slug string) (*model.Organization, error)

	// FindByUser lists all organizations a user belongs to, oldest membership first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error)

	// CountCreatedBy counts organizations where the user holds the owner role.
	CountCreatedBy(ctx context.Context, userID uuid.UUID) (int, error)

	// Update updates an organization.
	Update(ctx context.Context, org *model.Organization) error
}

// MembershipRepository defines the interface for membership persistence.
type MembershipRepository interface {
	// Add adds a membership.
	Add(ctx context.Context, member *model.Membership) error

	// Find retrieves a membership. A clean miss is (nil, nil).
	Find(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error)

	// FindWithUsers lists memberships of an organization enriched with user details.
	FindWithUsers(ctx context.Context, orgID uuid.UUID) ([]*model.MembershipWithUser, error)

	// Remove removes a membership. Returns ErrMembershipNotFound when no row matched.
	Remove(ctx context.Context, orgID, userID uuid.UUID) error

	// Count counts members of an organization.
	Count(ctx context.Context, orgID uuid.UUID) (int, error)

	// CountOwners counts memberships with the owner role in an organization.
	CountOwners(ctx context.Context, orgID uuid.UUID) (int, error)
}

// InvitationRepository defines the interface for invitation persistence.
type InvitationRepository interface {
	// Create creates a new invitation.
	Create(ctx context.Context, invitation *model.Invitation) error

	// FindByID retrieves an invitation by ID. A clean miss is (nil, nil).
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)

	// FindPendingByEmail retrieves a stored-pending invitation for (orgID, email).
	// A clean miss is (nil, nil). Callers still check expiry themselves.
	FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error)

	// FindByOrganization lists invitations for an organization, newest first,
	// optionally filtered by stored status.
	FindByOrganization(ctx context.Context, orgID uuid.UUID, status *model.InvitationStatus) ([]*model.Invitation, error)

	// FindByEmail lists invitations addressed to an email, newest first,
	// optionally filtered by stored status.
	FindByEmail(ctx context.Context, email string, status *model.InvitationStatus) ([]*model.Invitation, error)

	// UpdateStatus updates an invitation's stored status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus) error
}

// UserLookup resolves users by email or id. A clean miss is (nil, nil).
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// TransactionRunner runs a function inside a database transaction. Repository
// calls made with the callback's context join the transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers invitation emails. Delivery is best-effort: the domain
// logs failures and never rolls back the invitation.
type Notifier interface {
	SendInvitationEmail(ctx context.Context, n *InvitationNotification) error
}

// InvitationNotification carries the fields the invitation email needs.
type InvitationNotification struct {
	Email            string
	OrganizationName string
	InviterName      string
	InvitationID     uuid.UUID
	AcceptURL        string
}

// LogoStore persists organization logos and returns a public URL. A nil store
// keeps logos inline on the organization row.
type LogoStore interface {
	// Put stores the logo bytes under the organization id and returns its URL.
	Put(ctx context.Context, orgID uuid.UUID, contentType string, data []byte) (string, error)
}

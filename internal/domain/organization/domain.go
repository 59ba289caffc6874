// Package organization implements the workspace store and the invitation
// lifecycle on top of repository ports.
package organization

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/domain/access"
	"github.com/warewise/server/internal/model"
)

// Domain implements the organization domain logic.
type Domain struct {
	orgs        OrganizationRepository
	members     MembershipRepository
	invitations InvitationRepository
	users       UserLookup
	tx          TransactionRunner
	notifier    Notifier
	logos       LogoStore
	guard       *access.Guard
	cfg         *Config
	logger      *zap.Logger
}

// NewDomain creates a new organization domain.
func NewDomain(
	orgs OrganizationRepository,
	members MembershipRepository,
	invitations InvitationRepository,
	users UserLookup,
	tx TransactionRunner,
	notifier Notifier,
	logos LogoStore,
	guard *access.Guard,
	cfg *Config,
	logger *zap.Logger,
) *Domain {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	_ = cfg.Validate()
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Domain{
		orgs:        orgs,
		members:     members,
		invitations: invitations,
		users:       users,
		tx:          tx,
		notifier:    notifier,
		logos:       logos,
		guard:       guard,
		cfg:         cfg,
		logger:      logger,
	}
}

// LogoUpload carries an uploaded logo image.
type LogoUpload struct {
	ContentType string
	Data        []byte
}

// CreateOrganizationInput is the input for CreateOrganization.
type CreateOrganizationInput struct {
	Name string      `json:"name" binding:"required"`
	Slug string      `json:"slug"`
	Logo *LogoUpload `json:"-"`
}

// UpdateOrganizationInput is the partial-update input for UpdateOrganization.
// Nil fields are left unchanged.
type UpdateOrganizationInput struct {
	Name *string     `json:"name"`
	Slug *string     `json:"slug"`
	Logo *LogoUpload `json:"-"`
}

// ========== Organization Operations ==========

// CreateOrganization creates an organization and its first owner membership
// atomically. The creator becomes the sole owner.
func (d *Domain) CreateOrganization(ctx context.Context, ownerID uuid.UUID, in *CreateOrganizationInput) (*model.Organization, error) {
	name := strings.TrimSpace(in.Name)
	if !validName(name) {
		return nil, ErrInvalidName
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = generateSlug(name)
	}
	if !validSlug(slug) {
		return nil, ErrInvalidSlug
	}

	owned, err := d.orgs.CountCreatedBy(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owned >= d.cfg.OrganizationLimit {
		return nil, ErrOrganizationLimit
	}

	existing, err := d.orgs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSlug
	}

	org := &model.Organization{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if in.Logo != nil {
		logoURL, err := d.storeLogo(ctx, org.ID, in.Logo)
		if err != nil {
			return nil, err
		}
		org.LogoURL = logoURL
	}

	// Organization row and owner membership are both-or-neither; an orphaned
	// organization with no owner violates the ownership invariant.
	err = d.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.orgs.Create(txCtx, org); err != nil {
			return err
		}
		member := &model.Membership{
			OrganizationID: org.ID,
			UserID:         ownerID,
			Role:           model.RoleOwner,
			JoinedAt:       time.Now(),
			UpdatedAt:      time.Now(),
		}
		return d.members.Add(txCtx, member)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("slug", org.Slug),
	)

	return org, nil
}

// GetOrganization retrieves an organization; the requester must be a member.
func (d *Domain) GetOrganization(ctx context.Context, requesterID, orgID uuid.UUID) (*model.Organization, error) {
	member, err := d.members.Find(ctx, orgID, requesterID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrOrganizationNotFound
	}
	org, err := d.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

// ListOrganizationsForUser lists the organizations a user belongs to.
func (d *Domain) ListOrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error) {
	return d.orgs.FindByUser(ctx, userID)
}

// UpdateOrganization applies a partial update. Unspecified fields are left
// unchanged.
func (d *Domain) UpdateOrganization(ctx context.Context, requesterID, orgID uuid.UUID, in *UpdateOrganizationInput) (*model.Organization, error) {
	if err := d.guard.Authorize(ctx, requesterID, orgID, access.ResourceOrganization, access.ActionUpdate); err != nil {
		return nil, ErrForbidden
	}

	org, err := d.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if !validName(name) {
			return nil, ErrInvalidName
		}
		org.Name = name
	}
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		if !validSlug(slug) {
			return nil, ErrInvalidSlug
		}
		if slug != org.Slug {
			existing, err := d.orgs.FindBySlug(ctx, slug)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != org.ID {
				return nil, ErrDuplicateSlug
			}
			org.Slug = slug
		}
	}
	if in.Logo != nil {
		logoURL, err := d.storeLogo(ctx, org.ID, in.Logo)
		if err != nil {
			return nil, err
		}
		org.LogoURL = logoURL
	}
	org.UpdatedAt = time.Now()

	if err := d.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// ========== Membership Operations ==========

// ListMembers lists an organization's members with user details. The
// requester must be a member.
func (d *Domain) ListMembers(ctx context.Context, requesterID, orgID uuid.UUID) ([]*model.MembershipWithUser, error) {
	member, err := d.members.Find(ctx, orgID, requesterID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrForbidden
	}
	return d.members.FindWithUsers(ctx, orgID)
}

// RemoveMember removes a membership. The target may be a user id or an email.
// Removing the sole remaining owner always fails with ErrLastOwner; the owner
// count is re-verified inside the delete transaction so concurrent removals
// cannot both pass the check.
func (d *Domain) RemoveMember(ctx context.Context, requesterID, orgID uuid.UUID, target string) error {
	targetID, err := d.resolveUserID(ctx, target)
	if err != nil {
		return err
	}

	// Members may remove themselves; removing anyone else needs permission.
	if targetID != requesterID {
		if err := d.guard.Authorize(ctx, requesterID, orgID, access.ResourceMember, access.ActionDelete); err != nil {
			return ErrForbidden
		}
	}

	member, err := d.members.Find(ctx, orgID, targetID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMembershipNotFound
	}

	return d.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if member.IsOwner() {
			owners, err := d.members.CountOwners(txCtx, orgID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}
		return d.members.Remove(txCtx, orgID, targetID)
	})
}

// GetMembership returns the caller's membership, or nil when not a member.
func (d *Domain) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	return d.members.Find(ctx, orgID, userID)
}

// resolveUserID resolves a user id or email to a user id.
func (d *Domain) resolveUserID(ctx context.Context, target string) (uuid.UUID, error) {
	if id, err := uuid.Parse(target); err == nil {
		return id, nil
	}
	user, err := d.users.FindByEmail(ctx, normalizeEmail(target))
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, ErrMembershipNotFound
	}
	return user.ID, nil
}

// storeLogo validates and persists a logo upload, returning its URL. Without
// a configured logo store, the image is kept inline as a data URL.
func (d *Domain) storeLogo(ctx context.Context, orgID uuid.UUID, logo *LogoUpload) (string, error) {
	if len(logo.Data) == 0 || int64(len(logo.Data)) > d.cfg.MaxLogoBytes {
		return "", ErrLogoTooLarge
	}
	if d.logos == nil {
		return fmt.Sprintf("data:%s;base64,%s", logo.ContentType, base64.StdEncoding.EncodeToString(logo.Data)), nil
	}
	return d.logos.Put(ctx, orgID, logo.ContentType, logo.Data)
}

// ========== Validation Helpers ==========

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validName(name string) bool {
	return len(name) >= 2 && len(name) <= 50
}

func validSlug(slug string) bool {
	return len(slug) >= 2 && len(slug) <= 50 && slugPattern.MatchString(slug)
}

var slugReplacer = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug derives a URL-safe slug from a display name.
func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugReplacer.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	return slug
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

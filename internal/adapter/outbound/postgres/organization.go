package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warewise/server/internal/domain/access"
	"github.com/warewise/server/internal/domain/organization"
	"github.com/warewise/server/internal/model"
)

// ========== Organization Adapter ==========

// OrganizationAdapter implements organization.OrganizationRepository.
type OrganizationAdapter struct {
	db *gorm.DB
}

// NewOrganizationAdapter creates a new organization adapter.
func NewOrganizationAdapter(db *gorm.DB) *OrganizationAdapter {
	return &OrganizationAdapter{db: db}
}

func (a *OrganizationAdapter) Create(ctx context.Context, org *model.Organization) error {
	err := dbFromContext(ctx, a.db).WithContext(ctx).Create(org).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return organization.ErrDuplicateSlug
	}
	return err
}

func (a *OrganizationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (a *OrganizationAdapter) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("slug = ?", slug).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (a *OrganizationAdapter) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error) {
	var orgs []*model.Organization
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.joined_at ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (a *OrganizationAdapter) CountCreatedBy(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Model(&model.Membership{}).
		Where("user_id = ? AND role = ?", userID, model.RoleOwner).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (a *OrganizationAdapter) Update(ctx context.Context, org *model.Organization) error {
	err := dbFromContext(ctx, a.db).WithContext(ctx).Save(org).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return organization.ErrDuplicateSlug
	}
	return err
}

// ========== Membership Adapter ==========

// MembershipAdapter implements organization.MembershipRepository and doubles
// as the access.MembershipLookup backing the authorization guard.
type MembershipAdapter struct {
	db *gorm.DB
}

// NewMembershipAdapter creates a new membership adapter.
func NewMembershipAdapter(db *gorm.DB) *MembershipAdapter {
	return &MembershipAdapter{db: db}
}

func (a *MembershipAdapter) Add(ctx context.Context, member *model.Membership) error {
	err := dbFromContext(ctx, a.db).WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return organization.ErrAlreadyMember
	}
	return err
}

func (a *MembershipAdapter) Find(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	var member model.Membership
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (a *MembershipAdapter) FindWithUsers(ctx context.Context, orgID uuid.UUID) ([]*model.MembershipWithUser, error) {
	var results []*model.MembershipWithUser
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Table("memberships").
		Select("memberships.*, users.email, users.name, users.avatar_url").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.organization_id = ?", orgID).
		Order("memberships.joined_at ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (a *MembershipAdapter) Remove(ctx context.Context, orgID, userID uuid.UUID) error {
	result := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&model.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return organization.ErrMembershipNotFound
	}
	return nil
}

func (a *MembershipAdapter) Count(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int64
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Model(&model.Membership{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (a *MembershipAdapter) CountOwners(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int64
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Model(&model.Membership{}).
		Where("organization_id = ? AND role = ?", orgID, model.RoleOwner).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ========== Invitation Adapter ==========

// InvitationAdapter implements organization.InvitationRepository.
type InvitationAdapter struct {
	db *gorm.DB
}

// NewInvitationAdapter creates a new invitation adapter.
func NewInvitationAdapter(db *gorm.DB) *InvitationAdapter {
	return &InvitationAdapter{db: db}
}

func (a *InvitationAdapter) Create(ctx context.Context, invitation *model.Invitation) error {
	return dbFromContext(ctx, a.db).WithContext(ctx).Create(invitation).Error
}

func (a *InvitationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Preload("Organization").
		Preload("Inviter").
		Where("id = ?", id).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (a *InvitationAdapter) FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := dbFromContext(ctx, a.db).WithContext(ctx).
		Where("organization_id = ? AND invitee_email = ? AND status = ?", orgID, email, model.InvitationStatusPending).
		Order("created_at DESC").
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (a *InvitationAdapter) FindByOrganization(ctx context.Context, orgID uuid.UUID, status *model.InvitationStatus) ([]*model.Invitation, error) {
	query := dbFromContext(ctx, a.db).WithContext(ctx).
		Preload("Inviter").
		Where("organization_id = ?", orgID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var invitations []*model.Invitation
	err := query.
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (a *InvitationAdapter) FindByEmail(ctx context.Context, email string, status *model.InvitationStatus) ([]*model.Invitation, error) {
	query := dbFromContext(ctx, a.db).WithContext(ctx).
		Preload("Organization").
		Preload("Inviter").
		Where("invitee_email = ?", email)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var invitations []*model.Invitation
	err := query.
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (a *InvitationAdapter) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == model.InvitationStatusAccepted {
		updates["accepted_at"] = gorm.Expr("NOW()")
	}

	result := dbFromContext(ctx, a.db).WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return organization.ErrInvitationNotFound
	}
	return nil
}

// Compile-time interface checks
var (
	_ organization.OrganizationRepository = (*OrganizationAdapter)(nil)
	_ organization.MembershipRepository   = (*MembershipAdapter)(nil)
	_ access.MembershipLookup             = (*MembershipAdapter)(nil)
	_ organization.InvitationRepository   = (*InvitationAdapter)(nil)
	_ organization.TransactionRunner      = (*TransactionAdapter)(nil)
)

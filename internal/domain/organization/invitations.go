package organization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/domain/access"
	"github.com/warewise/server/internal/model"
)

// InviteInput is the input for Invite.
type InviteInput struct {
	Email string     `json:"email" binding:"required,email"`
	Role  model.Role `json:"role" binding:"required"`
}

// Invite creates a pending invitation and sends the invitation email.
// Email delivery is best-effort: the invitation link remains independently
// shareable, so a failed send never rolls back the invitation row.
func (d *Domain) Invite(ctx context.Context, inviterID, orgID uuid.UUID, in *InviteInput) (*model.Invitation, error) {
	if !access.IsValidInviteRole(in.Role) {
		return nil, ErrInvalidRole
	}

	if err := d.guard.Authorize(ctx, inviterID, orgID, access.ResourceInvitation, access.ActionCreate); err != nil {
		return nil, ErrForbidden
	}

	org, err := d.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	memberCount, err := d.members.Count(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if memberCount >= d.cfg.MembershipLimit {
		return nil, ErrMembershipLimit
	}

	email := normalizeEmail(in.Email)

	// Already a member via another path?
	user, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		member, err := d.members.Find(ctx, orgID, user.ID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			return nil, ErrAlreadyMember
		}
	}

	// An expired pending row no longer blocks the slot; only a live pending
	// invitation does. Canceled and rejected rows never block.
	existing, err := d.invitations.FindPendingByEmail(ctx, orgID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsExpiredAt(time.Now()) {
		return nil, ErrDuplicateInvitation
	}

	invitation := &model.Invitation{
		ID:             uuid.New(),
		OrganizationID: orgID,
		InviterID:      inviterID,
		InviteeEmail:   email,
		Role:           in.Role,
		Status:         model.InvitationStatusPending,
		ExpiresAt:      time.Now().Add(d.cfg.InvitationExpiry),
		CreatedAt:      time.Now(),
	}

	if err := d.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	d.notify(ctx, invitation, org, inviterID)

	d.logger.Info("invitation created",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("organization_id", orgID.String()),
		zap.String("invitee_email", email),
		zap.String("role", string(in.Role)),
	)

	invitation.Organization = org
	return invitation, nil
}

// notify sends the invitation email, logging but swallowing failures.
func (d *Domain) notify(ctx context.Context, invitation *model.Invitation, org *model.Organization, inviterID uuid.UUID) {
	if d.notifier == nil {
		return
	}

	inviterName := ""
	if inviter, err := d.users.FindByID(ctx, inviterID); err == nil && inviter != nil {
		inviterName = inviter.Name
	}

	err := d.notifier.SendInvitationEmail(ctx, &InvitationNotification{
		Email:            invitation.InviteeEmail,
		OrganizationName: org.Name,
		InviterName:      inviterName,
		InvitationID:     invitation.ID,
		AcceptURL:        d.cfg.AcceptURL(invitation.ID.String()),
	})
	if err != nil {
		d.logger.Warn("invitation email delivery failed",
			zap.String("invitation_id", invitation.ID.String()),
			zap.Error(err),
		)
	}
}

// Cancel revokes a pending invitation on behalf of an organization member.
func (d *Domain) Cancel(ctx context.Context, actorID, invitationID uuid.UUID) error {
	invitation, err := d.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}

	if err := d.guard.Authorize(ctx, actorID, invitation.OrganizationID, access.ResourceInvitation, access.ActionCancel); err != nil {
		return ErrForbidden
	}

	if !invitation.IsPending() {
		return ErrInvitationProcessed
	}

	if err := d.invitations.UpdateStatus(ctx, invitationID, model.InvitationStatusCanceled); err != nil {
		return err
	}

	d.logger.Info("invitation canceled",
		zap.String("invitation_id", invitationID.String()),
		zap.String("canceled_by", actorID.String()),
	)
	return nil
}

// Accept accepts an invitation on behalf of the signed-in invitee and
// creates the membership. Accepting is idempotent with respect to the
// membership row: a user who already joined through another path still gets
// the invitation marked accepted.
func (d *Domain) Accept(ctx context.Context, userID uuid.UUID, userEmail string, invitationID uuid.UUID) (*model.Membership, error) {
	invitation, err := d.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}

	if normalizeEmail(invitation.InviteeEmail) != normalizeEmail(userEmail) {
		return nil, ErrEmailMismatch
	}

	if !invitation.IsPending() {
		return nil, ErrInvitationProcessed
	}

	// Expiry is computed at the read boundary; the stored status stays
	// pending so no second source of truth can drift.
	if invitation.IsExpiredAt(time.Now()) {
		return nil, ErrInvitationExpired
	}

	member := &model.Membership{
		OrganizationID: invitation.OrganizationID,
		UserID:         userID,
		Role:           invitation.Role,
		JoinedAt:       time.Now(),
		UpdatedAt:      time.Now(),
	}

	err = d.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		memberCount, err := d.members.Count(txCtx, invitation.OrganizationID)
		if err != nil {
			return err
		}
		if memberCount >= d.cfg.MembershipLimit {
			return ErrMembershipLimit
		}

		existing, err := d.members.Find(txCtx, invitation.OrganizationID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			member = existing
		} else if err := d.members.Add(txCtx, member); err != nil {
			return err
		}

		return d.invitations.UpdateStatus(txCtx, invitation.ID, model.InvitationStatusAccepted)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("invitation accepted",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("organization_id", invitation.OrganizationID.String()),
		zap.String("user_id", userID.String()),
	)

	return member, nil
}

// Reject declines an invitation on behalf of the signed-in invitee.
func (d *Domain) Reject(ctx context.Context, userEmail string, invitationID uuid.UUID) error {
	invitation, err := d.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}

	if normalizeEmail(invitation.InviteeEmail) != normalizeEmail(userEmail) {
		return ErrEmailMismatch
	}

	if !invitation.IsPending() {
		return ErrInvitationProcessed
	}

	if invitation.IsExpiredAt(time.Now()) {
		return ErrInvitationExpired
	}

	if err := d.invitations.UpdateStatus(ctx, invitationID, model.InvitationStatusRejected); err != nil {
		return err
	}

	d.logger.Info("invitation rejected",
		zap.String("invitation_id", invitationID.String()),
	)
	return nil
}

// ListInvitationsFilter filters ListInvitations.
type ListInvitationsFilter struct {
	OnlyPending bool
}

// ListInvitations lists an organization's invitations. With OnlyPending set,
// only stored-pending rows that are also unexpired are returned: an expired
// invitation never shows up as pending even though no sweeper flips its
// stored status.
func (d *Domain) ListInvitations(ctx context.Context, requesterID, orgID uuid.UUID, filter ListInvitationsFilter) ([]*model.Invitation, error) {
	if err := d.guard.Authorize(ctx, requesterID, orgID, access.ResourceInvitation, access.ActionCreate); err != nil {
		return nil, ErrForbidden
	}

	var status *model.InvitationStatus
	if filter.OnlyPending {
		s := model.InvitationStatusPending
		status = &s
	}

	invitations, err := d.invitations.FindByOrganization(ctx, orgID, status)
	if err != nil {
		return nil, err
	}

	if !filter.OnlyPending {
		return invitations, nil
	}

	now := time.Now()
	live := make([]*model.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		if !inv.IsExpiredAt(now) {
			live = append(live, inv)
		}
	}
	return live, nil
}

// ListInvitationsForEmail lists live pending invitations addressed to an
// email, for the invitee's own inbox view.
func (d *Domain) ListInvitationsForEmail(ctx context.Context, email string) ([]*model.Invitation, error) {
	status := model.InvitationStatusPending
	invitations, err := d.invitations.FindByEmail(ctx, normalizeEmail(email), &status)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]*model.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		if !inv.IsExpiredAt(now) {
			live = append(live, inv)
		}
	}
	return live, nil
}

package organization

import "errors"

// Domain errors for the organization module.
var (
	// Organization errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDuplicateSlug        = errors.New("slug already exists")
	ErrInvalidName          = errors.New("organization name must be 2-50 characters")
	ErrInvalidSlug          = errors.New("slug must be 2-50 lowercase alphanumeric or hyphen characters")
	ErrLogoTooLarge         = errors.New("logo exceeds the size limit")
	ErrOrganizationLimit    = errors.New("organization limit reached")

	// Membership errors
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrLastOwner          = errors.New("cannot remove the last owner")
	ErrMembershipLimit    = errors.New("organization membership limit reached")

	// Permission errors
	ErrForbidden   = errors.New("insufficient permission")
	ErrInvalidRole = errors.New("invalid role")

	// Invitation errors
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrInvitationExpired   = errors.New("invitation has expired")
	ErrInvitationProcessed = errors.New("invitation has already been processed")
	ErrDuplicateInvitation = errors.New("invitation already pending for this email")
	ErrEmailMismatch       = errors.New("invitation is bound to a different email")
)

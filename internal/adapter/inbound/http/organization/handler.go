package orghttp

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/warewise/server/internal/domain/organization"
	"github.com/warewise/server/internal/model"
	"github.com/warewise/server/internal/shared/metrics"
	"github.com/warewise/server/internal/shared/middleware"
)

// Handler handles organization HTTP requests.
type Handler struct {
	domain  *organization.Domain
	metrics *metrics.Metrics
}

// NewHandler creates a new organization handler.
func NewHandler(domain *organization.Domain, m *metrics.Metrics) *Handler {
	return &Handler{
		domain:  domain,
		metrics: m,
	}
}

// RegisterRoutes registers organization routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	orgs := r.Group("/organizations")
	orgs.Use(authMiddleware)
	{
		orgs.POST("", h.CreateOrganization)
		orgs.GET("", h.ListMyOrganizations)
		orgs.GET("/:id", h.GetOrganization)
		orgs.PATCH("/:id", h.UpdateOrganization)
		orgs.POST("/:id/logo", h.UploadLogo)

		// Members
		orgs.GET("/:id/members", h.ListMembers)
		orgs.DELETE("/:id/members/:target", h.RemoveMember)

		// Organization invitations
		orgs.POST("/:id/invitations", h.Invite)
		orgs.GET("/:id/invitations", h.ListInvitations)
	}

	invitations := r.Group("/invitations")
	invitations.Use(authMiddleware)
	{
		invitations.GET("", h.ListMyInvitations)
		invitations.POST("/:id/accept", h.AcceptInvitation)
		invitations.POST("/:id/reject", h.RejectInvitation)
		invitations.DELETE("/:id", h.CancelInvitation)
	}
}

// ========== Organization Handlers ==========

// CreateOrganization handles organization creation.
func (h *Handler) CreateOrganization(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var input organization.CreateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.domain.CreateOrganization(c.Request.Context(), userID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// ListMyOrganizations handles listing the caller's organizations.
func (h *Handler) ListMyOrganizations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgs, err := h.domain.ListOrganizationsForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

// GetOrganization handles getting an organization.
func (h *Handler) GetOrganization(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	org, err := h.domain.GetOrganization(c.Request.Context(), userID, orgID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// UpdateOrganization handles updating an organization.
func (h *Handler) UpdateOrganization(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input organization.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.domain.UpdateOrganization(c.Request.Context(), userID, orgID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// UploadLogo handles uploading an organization logo.
func (h *Handler) UploadLogo(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read logo file"})
		return
	}

	logo := &organization.LogoUpload{
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	org, err := h.domain.UpdateOrganization(c.Request.Context(), userID, orgID, &organization.UpdateOrganizationInput{Logo: logo})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// ========== Member Handlers ==========

// ListMembers handles listing organization members.
func (h *Handler) ListMembers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	members, err := h.domain.ListMembers(c.Request.Context(), userID, orgID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// RemoveMember handles removing a member by user id or email.
func (h *Handler) RemoveMember(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	target := c.Param("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target is required"})
		return
	}

	if err := h.domain.RemoveMember(c.Request.Context(), userID, orgID, target); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// ========== Invitation Handlers ==========

// Invite handles sending an invitation.
func (h *Handler) Invite(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input organization.InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.domain.Invite(c.Request.Context(), userID, orgID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.RecordInvitationEvent("created")
	c.JSON(http.StatusCreated, invitation)
}

// ListInvitations handles listing an organization's invitations.
func (h *Handler) ListInvitations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	filter := organization.ListInvitationsFilter{
		OnlyPending: c.Query("status") == string(model.InvitationStatusPending),
	}

	invitations, err := h.domain.ListInvitations(c.Request.Context(), userID, orgID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// ListMyInvitations handles listing the caller's pending invitations.
func (h *Handler) ListMyInvitations(c *gin.Context) {
	email := middleware.GetEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	invitations, err := h.domain.ListInvitationsForEmail(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// AcceptInvitation handles accepting an invitation.
func (h *Handler) AcceptInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	email := middleware.GetEmail(c)

	invitationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	membership, err := h.domain.Accept(c.Request.Context(), userID, email, invitationID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.RecordInvitationEvent("accepted")
	c.JSON(http.StatusOK, gin.H{
		"message":    "Invitation accepted",
		"membership": membership,
	})
}

// RejectInvitation handles rejecting an invitation.
func (h *Handler) RejectInvitation(c *gin.Context) {
	email := middleware.GetEmail(c)

	invitationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.domain.Reject(c.Request.Context(), email, invitationID); err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.RecordInvitationEvent("rejected")
	c.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
}

// CancelInvitation handles canceling a pending invitation.
func (h *Handler) CancelInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	invitationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.domain.Cancel(c.Request.Context(), userID, invitationID); err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.RecordInvitationEvent("canceled")
	c.JSON(http.StatusOK, gin.H{"message": "Invitation canceled"})
}

// ========== Helper Methods ==========

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// handleError handles organization domain errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case organization.ErrOrganizationNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "organization_not_found"})
	case organization.ErrDuplicateSlug:
		c.JSON(http.StatusConflict, gin.H{"error": "slug_already_exists"})
	case organization.ErrInvalidName:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_name"})
	case organization.ErrInvalidSlug:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_slug"})
	case organization.ErrLogoTooLarge:
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo_too_large"})
	case organization.ErrOrganizationLimit:
		c.JSON(http.StatusForbidden, gin.H{"error": "organization_limit_reached"})
	case organization.ErrMembershipNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "member_not_found"})
	case organization.ErrAlreadyMember:
		c.JSON(http.StatusConflict, gin.H{"error": "user_already_member"})
	case organization.ErrLastOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": "last_owner"})
	case organization.ErrMembershipLimit:
		c.JSON(http.StatusForbidden, gin.H{"error": "membership_limit_reached"})
	case organization.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient_permission"})
	case organization.ErrInvalidRole:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
	case organization.ErrInvitationNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation_not_found"})
	case organization.ErrInvitationExpired:
		c.JSON(http.StatusGone, gin.H{"error": "invitation_expired"})
	case organization.ErrInvitationProcessed:
		c.JSON(http.StatusGone, gin.H{"error": "invitation_already_processed"})
	case organization.ErrDuplicateInvitation:
		c.JSON(http.StatusConflict, gin.H{"error": "invitation_already_pending"})
	case organization.ErrEmailMismatch:
		c.JSON(http.StatusForbidden, gin.H{"error": "invitation_not_for_you"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

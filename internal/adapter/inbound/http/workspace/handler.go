package workspacehttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/warewise/server/internal/domain/session"
	"github.com/warewise/server/internal/shared/metrics"
	"github.com/warewise/server/internal/shared/middleware"
)

// Handler handles workspace resolution HTTP requests.
type Handler struct {
	resolver *session.Resolver
	metrics  *metrics.Metrics
}

// NewHandler creates a new workspace handler.
func NewHandler(resolver *session.Resolver, m *metrics.Metrics) *Handler {
	return &Handler{
		resolver: resolver,
		metrics:  m,
	}
}

// RegisterRoutes registers workspace routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	workspace := r.Group("/workspace")
	workspace.Use(authMiddleware)
	{
		workspace.GET("/context", h.ResolveContext)
		workspace.PUT("/active", h.SetActive)
	}
}

type setActiveRequest struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
}

// ResolveContext resolves the caller's workspace context for a navigation.
// The path query parameter carries the client-side route being visited, so
// workspace-exempt routes resolve without requiring a workspace.
func (h *Handler) ResolveContext(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	path := c.Query("path")
	if path == "" {
		path = "/"
	}

	wc, err := h.resolver.Resolve(c.Request.Context(), identity, path)
	if err != nil {
		h.handleError(c, err)
		return
	}

	outcome := "resolved"
	if h.resolver.SkipsWorkspaceCheck(path) {
		outcome = "skipped"
	}
	h.metrics.RecordWorkspaceResolution(outcome)
	c.JSON(http.StatusOK, wc)
}

// SetActive explicitly selects the caller's active organization.
func (h *Handler) SetActive(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization_id"})
		return
	}

	if err := h.resolver.SetActive(c.Request.Context(), identity, orgID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Active organization updated"})
}

// handleError handles resolver errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case session.ErrUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case session.ErrNoWorkspace:
		h.metrics.RecordWorkspaceResolution("no_workspace")
		c.JSON(http.StatusNotFound, gin.H{"error": "no_workspace"})
	case session.ErrRefreshRequired:
		// A fresh active organization was just persisted; the client repeats
		// the resolution once and finds it set.
		h.metrics.RecordWorkspaceResolution("auto_selected")
		c.JSON(http.StatusConflict, gin.H{"error": "refresh_required"})
	case session.ErrNotAMember:
		c.JSON(http.StatusForbidden, gin.H{"error": "not_a_member"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

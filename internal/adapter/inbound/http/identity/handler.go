package identityhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warewise/server/internal/domain/identity"
	"github.com/warewise/server/internal/model"
	"github.com/warewise/server/internal/shared/metrics"
	"github.com/warewise/server/internal/shared/middleware"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	domain  *identity.Domain
	metrics *metrics.Metrics
}

// NewHandler creates a new identity handler.
func NewHandler(domain *identity.Domain, m *metrics.Metrics) *Handler {
	return &Handler{
		domain:  domain,
		metrics: m,
	}
}

// RegisterRoutes registers authentication routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/oauth/:provider", h.BeginOAuth)
		auth.GET("/oauth/:provider/callback", h.OAuthCallback)
	}

	session := r.Group("/auth")
	session.Use(authMiddleware)
	{
		session.GET("/session", h.GetSession)
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User      *model.UserResponse `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt int64               `json:"expires_at"`
}

func toSessionResponse(s *identity.Session) sessionResponse {
	return sessionResponse{
		User:      s.User.ToResponse(),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.Unix(),
	}
}

// Register handles email/password registration.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.domain.Register(c.Request.Context(), identity.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.RecordAuthEvent("register", "email")
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Login handles email/password login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.domain.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuthEvent("login_failed", "email")
		h.handleError(c, err)
		return
	}

	h.metrics.RecordAuthEvent("login_success", "email")
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// BeginOAuth starts a social login flow.
func (h *Handler) BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")

	authURL, err := h.domain.BeginOAuth(c.Request.Context(), provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

// OAuthCallback completes a social login flow.
func (h *Handler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state and code are required"})
		return
	}

	session, err := h.domain.CompleteOAuth(c.Request.Context(), provider, state, code)
	if err != nil {
		h.metrics.RecordAuthEvent("login_failed", provider)
		h.handleError(c, err)
		return
	}

	h.metrics.RecordAuthEvent("login_success", provider)
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// GetSession returns the authenticated user.
func (h *Handler) GetSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.domain.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// handleError handles identity domain errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case identity.ErrEmailAlreadyExists:
		c.JSON(http.StatusConflict, gin.H{"error": "email_already_exists"})
	case identity.ErrPasswordTooShort:
		c.JSON(http.StatusBadRequest, gin.H{"error": "password_too_short"})
	case identity.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
	case identity.ErrInvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_oauth_state"})
	case identity.ErrUntrustedProvider:
		c.JSON(http.StatusForbidden, gin.H{"error": "untrusted_provider"})
	case identity.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
	case identity.ErrInvalidToken:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

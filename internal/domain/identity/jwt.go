package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/warewise/server/internal/model"
)

// Claims represents session token claims. The registered ID claim doubles as
// the session id that keys per-session state such as the active organization
// pointer.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// SessionID returns the session identifier carried by the token.
func (c *Claims) SessionID() string {
	return c.RegisteredClaims.ID
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// DefaultJWTConfig returns default session token configuration.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Expiry: 7 * 24 * time.Hour,
		Issuer: "warewise",
	}
}

// JWTManager issues and validates session tokens.
type JWTManager struct {
	config *JWTConfig
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(config *JWTConfig) *JWTManager {
	if config == nil {
		config = DefaultJWTConfig()
	}
	if config.Expiry <= 0 {
		config.Expiry = DefaultJWTConfig().Expiry
	}
	if config.Issuer == "" {
		config.Issuer = DefaultJWTConfig().Issuer
	}
	return &JWTManager{config: config}
}

// GenerateSessionToken issues a signed session token for the user.
func (m *JWTManager) GenerateSessionToken(user *model.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.config.Expiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateSessionToken validates a session token and returns its claims.
func (m *JWTManager) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

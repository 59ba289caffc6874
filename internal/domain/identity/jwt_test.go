package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warewise/server/internal/model"
)

func TestJWTManager_Roundtrip(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "warewise"})
	user := &model.User{ID: uuid.New(), Email: "user@example.com"}

	token, expiresAt, err := manager.GenerateSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := manager.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "warewise", claims.Issuer)
	assert.NotEmpty(t, claims.SessionID())
}

func TestNewJWTManager_NormalizesConfig(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{Secret: "test-secret"})
	user := &model.User{ID: uuid.New(), Email: "user@example.com"}

	token, expiresAt, err := manager.GenerateSessionToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := manager.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "warewise", claims.Issuer)
}

func TestJWTManager_SessionIDIsUniquePerToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	user := &model.User{ID: uuid.New(), Email: "user@example.com"}

	first, _, err := manager.GenerateSessionToken(user)
	require.NoError(t, err)
	second, _, err := manager.GenerateSessionToken(user)
	require.NoError(t, err)

	c1, err := manager.ValidateSessionToken(first)
	require.NoError(t, err)
	c2, err := manager.ValidateSessionToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, c1.SessionID(), c2.SessionID())
}

func TestJWTManager_ValidateSessionToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	user := &model.User{ID: uuid.New(), Email: "user@example.com"}

	t.Run("wrong_secret", func(t *testing.T) {
		other := NewJWTManager(&JWTConfig{Secret: "other-secret", Expiry: time.Hour})
		token, _, err := other.GenerateSessionToken(user)
		require.NoError(t, err)

		_, err = manager.ValidateSessionToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				ID:        uuid.New().String(),
			},
			UserID: user.ID,
			Email:  user.Email,
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = manager.ValidateSessionToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := manager.ValidateSessionToken("not.a.token")
		assert.Equal(t, ErrInvalidToken, err)
	})
}

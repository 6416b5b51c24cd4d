package jwt

import (
	"testing"
	"time"

	"gatehouse/services/user"
	"gatehouse/testutils"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *user.User {
	return &user.User{ID: 42, Name: "Test", Email: "test@example.com", Role: user.RoleAdmin}
}

func TestGenerateToken(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	tokenString, err := service.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := service.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.JTI)
	assert.Equal(t, claims.JTI, claims.ID)
}

func TestValidateToken(t *testing.T) {
	cfg := testutils.GetTestConfig()
	service := NewService(cfg, nil)

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherCfg := testutils.GetTestConfig()
		otherCfg.JWT.SecretKey = "a-completely-different-secret-key"
		other := NewService(otherCfg, nil)

		tokenString, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired token", func(t *testing.T) {
		shortCfg := testutils.GetTestConfig()
		shortCfg.JWT.AccessExpiry = -time.Minute
		short := NewService(shortCfg, nil)

		tokenString, err := short.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("none algorithm is rejected", func(t *testing.T) {
		token := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{Subject: "42"})
		tokenString, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})
}

func TestGetAccessExpirySeconds(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.JWT.AccessExpiry = 15 * time.Minute

	assert.Equal(t, 900, NewService(cfg, nil).GetAccessExpirySeconds())
}

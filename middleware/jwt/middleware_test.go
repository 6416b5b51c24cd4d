package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatehouse/services/jwt"
	"gatehouse/services/user"
	"gatehouse/testutils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireJWT(t *testing.T) {
	e := echo.New()
	jwtService := jwt.NewService(testutils.GetTestConfig(), nil)
	middleware := RequireJWT(jwtService)

	successHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "success"})
	}

	requestWith := func(header string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	expectUnauthorized := func(t *testing.T, err error, message string) {
		t.Helper()
		require.Error(t, err)
		httpError, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpError.Code)
		assert.Contains(t, httpError.Message, message)
	}

	t.Run("missing authorization header", func(t *testing.T) {
		err := middleware(successHandler)(requestWith(""))
		expectUnauthorized(t, err, "Authorization header required")
	})

	t.Run("invalid authorization header format", func(t *testing.T) {
		err := middleware(successHandler)(requestWith("Invalid token"))
		expectUnauthorized(t, err, "Invalid authorization header format")
	})

	t.Run("empty bearer token", func(t *testing.T) {
		err := middleware(successHandler)(requestWith("Bearer "))
		expectUnauthorized(t, err, "JWT token required")
	})

	t.Run("malformed JWT token", func(t *testing.T) {
		err := middleware(successHandler)(requestWith("Bearer invalid.jwt.token"))
		expectUnauthorized(t, err, "Malformed JWT token")
	})

	t.Run("expired JWT token", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.JWT.AccessExpiry = -time.Minute
		shortLived := jwt.NewService(cfg, nil)

		tokenString, err := shortLived.GenerateToken(&user.User{ID: 7, Role: user.RoleUser})
		require.NoError(t, err)

		err = middleware(successHandler)(requestWith("Bearer " + tokenString))
		expectUnauthorized(t, err, "JWT token has expired")
	})

	t.Run("valid JWT token", func(t *testing.T) {
		tokenString, err := jwtService.GenerateToken(&user.User{ID: 123, Role: user.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err = middleware(successHandler)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(123), GetUserID(c))

		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, uint(123), claims.UserID)
		assert.Equal(t, user.RoleAdmin, claims.Role)
		assert.NotEmpty(t, claims.JTI)
	})
}

func TestContextHelpersWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Zero(t, GetUserID(c))
	assert.Nil(t, GetClaims(c))
}

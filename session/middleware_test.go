package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gatehouse/testutils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	manager := NewManager(testutils.GetTestConfig(), NewMemoryStore())

	t.Run("loads session and sets cookie on write", func(t *testing.T) {
		e := echo.New()
		e.Use(Middleware(manager))
		e.GET("/", func(c echo.Context) error {
			require.NotNil(t, GetManager(c))
			GetManager(c).Put(c.Request().Context(), "k", "v")
			return c.NoContent(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("nil manager passes through", func(t *testing.T) {
		e := echo.New()
		e.Use(Middleware(nil))
		e.GET("/", func(c echo.Context) error {
			assert.Nil(t, GetManager(c))
			return c.NoContent(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSessionHelpers(t *testing.T) {
	manager := NewManager(testutils.GetTestConfig(), NewMemoryStore())

	e := echo.New()
	e.Use(Middleware(manager))
	e.GET("/whoami", func(c echo.Context) error {
		ctx := c.Request().Context()
		manager.Put(ctx, userIDKey, uint(7))
		manager.Put(ctx, roleKey, "admin")
		manager.Put(ctx, authenticatedKey, true)

		assert.Equal(t, uint(7), CurrentUserID(c))
		assert.EqualValues(t, "admin", CurrentRole(c))
		assert.True(t, IsAuthenticated(c))
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHelpersWithoutSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Zero(t, CurrentUserID(c))
	assert.Empty(t, CurrentRole(c))
	assert.False(t, IsAuthenticated(c))
}

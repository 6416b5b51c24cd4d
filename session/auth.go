package session

import (
	"gatehouse/services/user"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey        = "_user_id"
	roleKey          = "_role"
	authenticatedKey = "_authenticated"
)

func CurrentUserID(c echo.Context) uint {
	manager := GetManager(c)
	if manager == nil {
		return 0
	}

	switch v := manager.Get(c.Request().Context(), userIDKey).(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case float64:
		return uint(v)
	default:
		return 0
	}
}

func CurrentRole(c echo.Context) user.Role {
	manager := GetManager(c)
	if manager == nil {
		return ""
	}
	return user.Role(manager.GetString(c.Request().Context(), roleKey))
}

func IsAuthenticated(c echo.Context) bool {
	manager := GetManager(c)
	if manager == nil {
		return false
	}
	authenticated, _ := manager.Get(c.Request().Context(), authenticatedKey).(bool)
	return authenticated
}

package rolegate

import (
	"net/http"

	jwtmw "gatehouse/middleware/jwt"
	"gatehouse/services/user"
	"gatehouse/session"

	"github.com/labstack/echo/v4"
)

// Allowed reports whether role is one of the allowed roles. An empty allowed
// list admits every authenticated role.
func Allowed(role user.Role, allowed ...user.Role) bool {
	if role == "" {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

// Require gates a route on the caller's role. The role comes from the
// session when one is established, otherwise from validated JWT claims set
// by the JWT middleware. Rejections carry no body, only the status.
func Require(allowed ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := resolveRole(c)
			if !Allowed(role, allowed...) {
				return c.NoContent(http.StatusForbidden)
			}
			return next(c)
		}
	}
}

func resolveRole(c echo.Context) user.Role {
	if session.IsAuthenticated(c) {
		return session.CurrentRole(c)
	}
	if claims := jwtmw.GetClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}

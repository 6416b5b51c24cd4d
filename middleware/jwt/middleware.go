package jwt

import (
	"net/http"
	"strings"

	"gatehouse/services/jwt"

	"github.com/labstack/echo/v4"
)

const (
	UserIDKey = "_jwt_user_id"
	RoleKey   = "_jwt_role"
	ClaimsKey = "_jwt_claims"
)

func RequireJWT(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "JWT token required")
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				switch err {
				case jwt.ErrExpiredToken:
					return echo.NewHTTPError(http.StatusUnauthorized, "JWT token has expired")
				case jwt.ErrMalformedToken:
					return echo.NewHTTPError(http.StatusUnauthorized, "Malformed JWT token")
				case jwt.ErrInvalidSignature:
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid JWT token signature")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid JWT token")
				}
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(RoleKey, claims.Role)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

// OptionalJWT adopts a valid Bearer token when one is presented but lets
// the request through either way, so a later gate can fall back to the
// session.
func OptionalJWT(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				if claims, err := jwtService.ValidateToken(tokenString); err == nil {
					c.Set(UserIDKey, claims.UserID)
					c.Set(RoleKey, claims.Role)
					c.Set(ClaimsKey, claims)
				}
			}
			return next(c)
		}
	}
}

func GetUserID(c echo.Context) uint {
	if userID, ok := c.Get(UserIDKey).(uint); ok {
		return userID
	}
	return 0
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

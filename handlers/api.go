package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gatehouse/services/jwt"
	"gatehouse/services/logging"
	"gatehouse/services/user"
	"gatehouse/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// APIHandler serves the session-authenticated API surface: JWT issuance and
// device session management.
type APIHandler struct {
	users    *user.Service
	sessions *session.Service
	jwt      *jwt.Service
	logger   *logging.Service
}

func NewAPIHandler(users *user.Service, sessions *session.Service, jwtService *jwt.Service, logger *logging.Service) *APIHandler {
	return &APIHandler{
		users:    users,
		sessions: sessions,
		jwt:      jwtService,
		logger:   logger,
	}
}

// Admin has no body of its own; the role gate in front of it decides.
func (h *APIHandler) Admin(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// IssueToken exchanges an authenticated session for a short-lived API token.
func (h *APIHandler) IssueToken(c echo.Context) error {
	userID := session.CurrentUserID(c)
	if userID == 0 {
		return c.NoContent(http.StatusUnauthorized)
	}

	current, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.NoContent(http.StatusUnauthorized)
		}
		h.logger.Error("token issuance user lookup failed", zap.Error(err))
		return c.NoContent(http.StatusInternalServerError)
	}

	tokenString, err := h.jwt.GenerateToken(current)
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		Token:     tokenString,
		ExpiresIn: h.jwt.GetAccessExpirySeconds(),
	})
}

type sessionResponse struct {
	ID        uint      `json:"id"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *APIHandler) ListSessions(c echo.Context) error {
	userID := session.CurrentUserID(c)
	if userID == 0 {
		return c.NoContent(http.StatusUnauthorized)
	}

	records, err := h.sessions.GetUserSessions(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("session listing failed", zap.Error(err), zap.Uint("user_id", userID))
		return c.NoContent(http.StatusInternalServerError)
	}

	out := make([]sessionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, sessionResponse{
			ID:        record.ID,
			IPAddress: record.IPAddress,
			Device:    record.Device,
			CreatedAt: record.CreatedAt,
			ExpiresAt: record.ExpiresAt,
		})
	}

	return c.JSON(http.StatusOK, out)
}

func (h *APIHandler) RevokeSession(c echo.Context) error {
	userID := session.CurrentUserID(c)
	if userID == 0 {
		return c.NoContent(http.StatusUnauthorized)
	}

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.sessions.RevokeSession(c.Request().Context(), userID, uint(sessionID)); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		h.logger.Error("session revocation failed", zap.Error(err), zap.Uint("user_id", userID))
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"gatehouse/services/auth"
	"gatehouse/services/logging"
	"gatehouse/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler exposes the credential flows over JSON. Every response body is
// an auth.Result; infrastructure failures surface as a 500 with the generic
// error message so the caller never sees internals.
type AuthHandler struct {
	auth   *auth.Service
	logger *logging.Service
}

func NewAuthHandler(authService *auth.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		auth:   authService,
		logger: logger,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Result{Error: auth.MsgInvalidFields})
	}
	req.IPAddress = c.RealIP()
	req.UserAgent = c.Request().Header.Get("User-Agent")

	result, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	result, err := h.auth.Logout(c.Request().Context())
	if err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Result{Error: auth.MsgInvalidFields})
	}

	result, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("registration failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) NewVerification(c echo.Context) error {
	tokenValue := c.QueryParam("token")
	if tokenValue == "" {
		return c.JSON(http.StatusOK, auth.Result{Error: auth.MsgMissingToken})
	}

	result, err := h.auth.NewVerification(c.Request().Context(), tokenValue)
	if err != nil {
		h.logger.Error("email verification failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Reset(c echo.Context) error {
	var req auth.ResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Result{Error: auth.MsgInvalidFields})
	}

	result, err := h.auth.Reset(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) NewPassword(c echo.Context) error {
	var req auth.NewPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Result{Error: auth.MsgInvalidFields})
	}

	result, err := h.auth.NewPassword(c.Request().Context(), req, c.QueryParam("token"))
	if err != nil {
		h.logger.Error("password update failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Settings(c echo.Context) error {
	var req auth.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Result{Error: auth.MsgInvalidFields})
	}

	result, err := h.auth.Settings(c.Request().Context(), session.CurrentUserID(c), req)
	if err != nil {
		h.logger.Error("settings update failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, auth.Result{Error: auth.MsgSomethingWentWrong})
	}
	return c.JSON(http.StatusOK, result)
}

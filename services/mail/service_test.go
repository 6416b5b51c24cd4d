package mail

import (
	"testing"

	"gatehouse/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("requires a from address", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Mail.FromAddress = ""

		service, err := NewService(cfg, nil)

		assert.Nil(t, service)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FROM_ADDRESS is required")
	})

	t.Run("creates client with valid config", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Mail.Host = "smtp.example.com"
		cfg.Mail.Port = 587
		cfg.Mail.FromAddress = "onboarding@example.com"

		service, err := NewService(cfg, nil)

		require.NoError(t, err)
		require.NotNil(t, service)
	})
}

func TestRenderTemplates(t *testing.T) {
	t.Run("verification body carries the deep link", func(t *testing.T) {
		body, err := render(verificationBody, map[string]any{
			"Link":   "http://localhost:8080/auth/new-verification?token=abc",
			"Expiry": "1h0m0s",
		})

		require.NoError(t, err)
		assert.Contains(t, body, "/auth/new-verification?token=abc")
	})

	t.Run("password reset body carries the deep link", func(t *testing.T) {
		body, err := render(passwordResetBody, map[string]any{
			"Link":   "http://localhost:8080/auth/new-password?token=abc",
			"Expiry": "1h0m0s",
		})

		require.NoError(t, err)
		assert.Contains(t, body, "/auth/new-password?token=abc")
	})

	t.Run("two factor body carries the raw code", func(t *testing.T) {
		body, err := render(twoFactorBody, map[string]any{"Code": "123456"})

		require.NoError(t, err)
		assert.Contains(t, body, "123456")
		assert.NotContains(t, body, "href")
	})
}

package auth

import (
	"testing"

	"gatehouse/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatorService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutils.GetTestConfig(), nil, nil, nil, nil, nil)
}

func TestValidateLogin(t *testing.T) {
	s := newValidatorService(t)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, s.validateLogin(LoginRequest{Email: "a@x.com", Password: "secret1"}))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := s.validateLogin(LoginRequest{})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})

	t.Run("malformed email", func(t *testing.T) {
		err := s.validateLogin(LoginRequest{Email: "not-an-email", Password: "secret1"})
		require.Error(t, err)
	})

	t.Run("email with display name is rejected", func(t *testing.T) {
		err := s.validateLogin(LoginRequest{Email: "Someone <a@x.com>", Password: "secret1"})
		require.Error(t, err)
	})
}

func TestValidateRegister(t *testing.T) {
	s := newValidatorService(t)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, s.validateRegister(RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"}))
	})

	t.Run("short password", func(t *testing.T) {
		err := s.validateRegister(RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "short"})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "password")
	})

	t.Run("short name", func(t *testing.T) {
		err := s.validateRegister(RegisterRequest{Name: "Al", Email: "a@x.com", Password: "secret1"})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "name")
	})
}

func TestValidateNewPassword(t *testing.T) {
	s := newValidatorService(t)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, s.validateNewPassword(NewPasswordRequest{Password: "secret1", ConfirmPassword: "secret1"}))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := s.validateNewPassword(NewPasswordRequest{Password: "secret1", ConfirmPassword: "secret2"})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "confirmPassword")
	})

	t.Run("too short", func(t *testing.T) {
		err := s.validateNewPassword(NewPasswordRequest{Password: "abc", ConfirmPassword: "abc"})
		require.Error(t, err)
	})
}

func TestValidateSettings(t *testing.T) {
	s := newValidatorService(t)

	t.Run("empty update is valid", func(t *testing.T) {
		assert.NoError(t, s.validateSettings(SettingsRequest{}))
	})

	t.Run("name only", func(t *testing.T) {
		assert.NoError(t, s.validateSettings(SettingsRequest{Name: strPtr("Alice")}))
	})

	t.Run("full password triple", func(t *testing.T) {
		assert.NoError(t, s.validateSettings(SettingsRequest{
			Password:           strPtr("secret1"),
			NewPassword:        strPtr("secret2"),
			ConfirmNewPassword: strPtr("secret2"),
		}))
	})

	t.Run("current password without a new one", func(t *testing.T) {
		err := s.validateSettings(SettingsRequest{Password: strPtr("secret1")})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "newPassword")
	})

	t.Run("new password without the current one", func(t *testing.T) {
		err := s.validateSettings(SettingsRequest{
			NewPassword:        strPtr("secret2"),
			ConfirmNewPassword: strPtr("secret2"),
		})
		require.Error(t, err)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "password")
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		err := s.validateSettings(SettingsRequest{
			Password:           strPtr("secret1"),
			NewPassword:        strPtr("secret2"),
			ConfirmNewPassword: strPtr("other"),
		})
		require.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		err := s.validateSettings(SettingsRequest{Email: strPtr("nope")})
		require.Error(t, err)
	})
}

func TestFieldErrorsMessage(t *testing.T) {
	err := FieldErrors{"password": "Password is required", "email": "Invalid email"}
	assert.Equal(t, "invalid fields: email: Invalid email; password: Password is required", err.Error())
}

package auth

import (
	"fmt"
	netmail "net/mail"
	"sort"
	"strings"
)

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Code      string `json:"code,omitempty"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type NewPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SettingsRequest carries a partial update; nil means "leave unchanged".
type SettingsRequest struct {
	Name               *string `json:"name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Password           *string `json:"password,omitempty"`
	NewPassword        *string `json:"newPassword,omitempty"`
	ConfirmNewPassword *string `json:"confirmNewPassword,omitempty"`
	TwoFactorEnabled   *bool   `json:"isTwoFactorEnabled,omitempty"`
}

// FieldErrors maps a field name to what is wrong with it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func validEmail(value string) bool {
	addr, err := netmail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Address == value
}

func (s *Service) validateLogin(req LoginRequest) error {
	errs := FieldErrors{}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !validEmail(req.Email) {
		errs["email"] = "Invalid email"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Service) validateRegister(req RegisterRequest) error {
	errs := FieldErrors{}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !validEmail(req.Email) {
		errs["email"] = "Invalid email"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < s.config.Auth.MinPasswordLength {
		errs["password"] = fmt.Sprintf("Minimum %d characters required", s.config.Auth.MinPasswordLength)
	}
	if req.Name == "" {
		errs["name"] = "Name is required"
	} else if len(req.Name) < s.config.Auth.MinNameLength {
		errs["name"] = fmt.Sprintf("Minimum %d characters required", s.config.Auth.MinNameLength)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Service) validateReset(req ResetRequest) error {
	errs := FieldErrors{}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !validEmail(req.Email) {
		errs["email"] = "Invalid email"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Service) validateNewPassword(req NewPasswordRequest) error {
	errs := FieldErrors{}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < s.config.Auth.MinPasswordLength {
		errs["password"] = fmt.Sprintf("Minimum %d characters required", s.config.Auth.MinPasswordLength)
	}
	if req.ConfirmPassword == "" {
		errs["confirmPassword"] = "Confirm password is required"
	} else if req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateSettings enforces the pairing rules: a password change needs the
// current password, the new password and a matching confirmation together.
func (s *Service) validateSettings(req SettingsRequest) error {
	errs := FieldErrors{}

	if req.Email != nil && !validEmail(*req.Email) {
		errs["email"] = "Invalid email"
	}
	if req.NewPassword != nil && len(*req.NewPassword) < s.config.Auth.MinPasswordLength {
		errs["newPassword"] = fmt.Sprintf("Minimum %d characters required", s.config.Auth.MinPasswordLength)
	}
	if req.Password != nil && req.NewPassword == nil {
		errs["newPassword"] = "New password is required"
	}
	if req.NewPassword != nil && req.Password == nil {
		errs["password"] = "Password is required"
	}
	if req.NewPassword != nil {
		if req.ConfirmNewPassword == nil {
			errs["confirmNewPassword"] = "Confirm new password is required"
		} else if *req.NewPassword != *req.ConfirmNewPassword {
			errs["confirmNewPassword"] = "Passwords do not match"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

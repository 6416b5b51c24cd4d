package auth

import (
	"context"
	"errors"

	"gatehouse/services/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// reduceForOAuth returns the update an OAuth-linked account is allowed to
// make: identity fields are managed by the provider, so email, passwords and
// the two-factor toggle are dropped before anything looks at them.
func reduceForOAuth(req SettingsRequest) SettingsRequest {
	return SettingsRequest{
		Name: req.Name,
	}
}

// Settings applies a partial account update for the session user. An email
// change is never applied directly: it only issues a verification token for
// the new address, and the address flips when that token is redeemed.
func (s *Service) Settings(ctx context.Context, sessionUserID uint, req SettingsRequest) (Result, error) {
	if sessionUserID == 0 {
		return fail(MsgUnauthorized), nil
	}

	current, err := s.users.FindByID(ctx, sessionUserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fail(MsgUnauthorized), nil
		}
		s.logger.Error("settings user lookup failed", zap.Error(err), zap.Uint("user_id", sessionUserID))
		return fail(MsgSomethingWentWrong), nil
	}

	if err := s.validateSettings(req); err != nil {
		return fail(MsgInvalidFields), nil
	}

	isOAuth := false
	if _, err := s.users.FindAccountByUserID(ctx, current.ID); err == nil {
		isOAuth = true
	} else if !errors.Is(err, user.ErrAccountNotFound) {
		s.logger.Error("settings account lookup failed", zap.Error(err), zap.Uint("user_id", current.ID))
		return fail(MsgSomethingWentWrong), nil
	}

	if isOAuth {
		req = reduceForOAuth(req)
	}

	if req.Email != nil && *req.Email != current.Email {
		other, err := s.users.FindByEmail(ctx, *req.Email)
		if err == nil && other.ID != current.ID {
			return fail(MsgEmailAlreadyInUse), nil
		}
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			s.logger.Error("settings email lookup failed", zap.Error(err))
			return fail(MsgSomethingWentWrong), nil
		}

		verification, err := s.tokens.GenerateVerificationToken(ctx, *req.Email)
		if err != nil {
			return fail(MsgSomethingWentWrong), nil
		}
		if err := s.mailer.SendVerificationEmail(verification.Email, verification.Token); err != nil {
			return Result{}, err
		}

		// The stored email stays put until the new address is verified.
		return succeed(MsgVerificationSent), nil
	}

	update := user.Update{
		Name:             req.Name,
		TwoFactorEnabled: req.TwoFactorEnabled,
	}

	if req.Password != nil && req.NewPassword != nil && current.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(*current.Password), []byte(*req.Password)); err != nil {
			return fail(MsgIncorrectPassword), nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), s.config.Auth.BcryptCost)
		if err != nil {
			s.logger.Error("password hashing failed", zap.Error(err))
			return fail(MsgSomethingWentWrong), nil
		}
		hashed := string(hash)
		update.Password = &hashed
	}

	if err := s.users.Update(ctx, current.ID, update); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}

	return succeed(MsgSettingsUpdated), nil
}
